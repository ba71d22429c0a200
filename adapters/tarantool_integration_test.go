//go:build integration

package adapters_test

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	tsuite "github.com/stretchr/testify/suite"
	"github.com/tarantool/go-tarantool/v2"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
	th "github.com/adata/dbconn/internal/testhelpers"
)

// TarantoolTestSuite is the test suite for the tarantool adapter.
type TarantoolTestSuite struct {
	tsuite.Suite
	ctr *th.TarantoolContainer
	ctx context.Context
	d   *core.Connection
}

func TestTarantoolTestSuite(t *testing.T) {
	tsuite.Run(t, new(TarantoolTestSuite))
}

func (suite *TarantoolTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewTarantoolContainer(suite.ctx, &core.ConnectionParams{
		ID:       "test-tarantool",
		Name:     "test-tarantool",
		Database: "Orders",
	})
	if err != nil {
		log.Fatal(err)
	}

	err = th.Seed(suite.ctx, ctr.Conn,
		`CREATE TABLE T (ID INTEGER PRIMARY KEY, Name STRING)`,
		`INSERT INTO T VALUES (1, 'a'), (2, 'b')`,
	)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
	suite.d = ctr.Conn
}

func (suite *TarantoolTestSuite) TearDownSuite() {
	suite.d.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *TarantoolTestSuite) TestShouldReturnNormalizedRows() {
	t := suite.T()

	result, err := suite.d.Execute(suite.ctx, "SELECT ID, Name FROM T ORDER BY ID")
	assert.NoError(t, err)

	assert.Equal(t, "Orders", suite.d.DatabaseName())
	assert.Equal(t, "tarantool", suite.d.DriverName())
	assert.Equal(t, core.Header{"id", "name"}, result.Header())
	assert.Equal(t, 2, result.Len())
	assert.Equal(t, "a", result.Rows()[0][1])
}

func (suite *TarantoolTestSuite) TestShouldStreamWithBindings() {
	t := suite.T()

	cursor, err := suite.d.Table("T").Where("ID", ">=", 2).Cursor(suite.ctx)
	assert.NoError(t, err)

	var names []any
	for row, err := range cursor.Rows() {
		assert.NoError(t, err)
		names = append(names, row[1])
	}
	assert.Equal(t, []any{"b"}, names)
}

func (suite *TarantoolTestSuite) TestShouldErrorMissingSpace() {
	t := suite.T()

	_, err := suite.d.Execute(suite.ctx, "SELECT * FROM MISSING")

	var execErr *core.ExecutionError
	assert.ErrorAs(t, err, &execErr)

	var boxErr tarantool.Error
	assert.True(t, errors.As(err, &boxErr))
	assert.ErrorContains(t, err, "MISSING")
}

func (suite *TarantoolTestSuite) TestSchema() {
	t := suite.T()

	ok, err := suite.d.Schema().HasTable(suite.ctx, "T")
	assert.NoError(t, err)
	assert.True(t, ok)

	columns, err := suite.d.Schema().ColumnListing(suite.ctx, "T")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, columns)
}

func (suite *TarantoolTestSuite) TestShouldFailUnreachable() {
	t := suite.T()

	_, err := adapters.NewConnection(suite.ctx, &core.ConnectionParams{
		Type: "tarantool",
		Host: "127.0.0.1",
		Port: 1,
	})

	var connErr *core.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, "tarantool", connErr.Driver)
}
