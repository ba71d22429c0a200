//go:build integration

package adapters_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/adata/dbconn/core"
	th "github.com/adata/dbconn/internal/testhelpers"
)

// MySQLTestSuite is the test suite for the mysql adapter.
type MySQLTestSuite struct {
	tsuite.Suite
	ctr *th.MySQLContainer
	ctx context.Context
	d   *core.Connection
}

func TestMySQLTestSuite(t *testing.T) {
	tsuite.Run(t, new(MySQLTestSuite))
}

func (suite *MySQLTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewMySQLContainer(suite.ctx, &core.ConnectionParams{
		ID:   "test-mysql",
		Name: "test-mysql",
	})
	if err != nil {
		log.Fatal(err)
	}

	err = th.Seed(suite.ctx, ctr.Conn,
		"CREATE TABLE T (ID INT PRIMARY KEY, NAME VARCHAR(16))",
		"INSERT INTO T VALUES (1, 'a'), (2, 'b')",
	)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
	suite.d = ctr.Conn
}

func (suite *MySQLTestSuite) TearDownSuite() {
	suite.d.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *MySQLTestSuite) TestShouldReturnNormalizedRows() {
	t := suite.T()

	result, err := suite.d.Execute(suite.ctx, "SELECT ID, NAME FROM T ORDER BY ID")
	assert.NoError(t, err)
	assert.Equal(t, core.Header{"id", "name"}, result.Header())
	assert.Equal(t, 2, result.Len())
}

func (suite *MySQLTestSuite) TestShouldReturnAffectedRows() {
	t := suite.T()

	result, err := suite.d.Table("T").Where("ID", ">", 0).Update(suite.ctx, map[string]any{"NAME": "z"})
	assert.NoError(t, err)
	assert.Equal(t, core.Header{"affected_rows"}, result.Header())
	// text protocol results arrive as strings
	assert.Equal(t, "2", fmt.Sprint(result.Rows()[0][0]))
}

func (suite *MySQLTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	_, err := suite.d.Execute(suite.ctx, "invalid sql")

	var execErr *core.ExecutionError
	assert.ErrorAs(t, err, &execErr)
	assert.ErrorContains(t, err, "You have an error in your SQL syntax")

	var myErr *mysql.MySQLError
	if assert.True(t, errors.As(err, &myErr)) {
		assert.EqualValues(t, 1064, myErr.Number)
	}
}

func (suite *MySQLTestSuite) TestSchema() {
	t := suite.T()

	tables, err := suite.d.Schema().Tables(suite.ctx)
	assert.NoError(t, err)
	assert.Contains(t, tables, "T")

	ok, err := suite.d.Schema().HasColumn(suite.ctx, "T", "name")
	assert.NoError(t, err)
	assert.True(t, ok)
}
