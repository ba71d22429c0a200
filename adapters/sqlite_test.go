//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
)

func newSQLiteConnection(t *testing.T) *core.Connection {
	t.Helper()

	conn, err := adapters.NewConnection(context.Background(), &core.ConnectionParams{
		Name: "memory",
		Type: "sqlite",
		URL:  ":memory:",
	}, core.WithPingOnConnect())
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	_, err = conn.Execute(context.Background(), `CREATE TABLE ORDERS (ID INTEGER PRIMARY KEY, STATUS TEXT, Total REAL)`)
	require.NoError(t, err)

	return conn
}

func TestSQLite_EndToEnd(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	conn := newSQLiteConnection(t)
	r.Equal("sqlite", conn.DriverName())

	result, err := conn.Table("ORDERS").Insert(ctx, map[string]any{"ID": 1, "STATUS": "open", "Total": 9.5})
	r.NoError(err)
	r.Equal(core.Header{"affected_rows"}, result.Header())
	r.Equal([]core.Row{{int64(1)}}, result.Rows())

	_, err = conn.Table("ORDERS").Insert(ctx, map[string]any{"ID": 2, "STATUS": "closed", "Total": 1.0})
	r.NoError(err)

	result, err = conn.Execute(ctx, `SELECT ID, STATUS, Total FROM ORDERS ORDER BY ID`)
	r.NoError(err)
	r.Equal(core.Header{"id", "status", "total"}, result.Header())
	r.Equal([]core.Row{{int64(1), "open", 9.5}, {int64(2), "closed", 1.0}}, result.Rows())

	record, err := conn.Table("ORDERS").Where("STATUS", "=", "open").First(ctx)
	r.NoError(err)
	r.Equal(map[string]any{"id": int64(1), "status": "open", "total": 9.5}, record)

	_, err = conn.Table("ORDERS").Where("ID", "=", 2).Update(ctx, map[string]any{"STATUS": "open"})
	r.NoError(err)

	cursor, err := conn.Table("ORDERS").Select("ID").WhereIn("STATUS", "open").OrderByDesc("ID").Cursor(ctx)
	r.NoError(err)
	r.Equal(core.Header{"id"}, cursor.Header())

	var ids []any
	for row, err := range cursor.Rows() {
		r.NoError(err)
		ids = append(ids, row[0])
	}
	r.Equal([]any{int64(2), int64(1)}, ids)

	_, err = conn.Table("ORDERS").Where("ID", "=", 1).Delete(ctx)
	r.NoError(err)

	records, err := conn.Table("ORDERS").Get(ctx)
	r.NoError(err)
	r.Len(records, 1)
}

func TestSQLite_Schema(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	conn := newSQLiteConnection(t)
	schema := conn.Schema()

	ok, err := schema.HasTable(ctx, "ORDERS")
	r.NoError(err)
	r.True(ok)

	tables, err := schema.Tables(ctx)
	r.NoError(err)
	r.Equal([]string{"ORDERS"}, tables)

	columns, err := schema.ColumnListing(ctx, "ORDERS")
	r.NoError(err)
	r.Equal([]string{"id", "status", "total"}, columns)

	ok, err = schema.HasColumns(ctx, "ORDERS", "id", "TOTAL")
	r.NoError(err)
	r.True(ok)

	r.NoError(schema.DropIfExists(ctx, "ORDERS"))
	r.NoError(schema.DropIfExists(ctx, "ORDERS"))

	ok, err = schema.HasTable(ctx, "ORDERS")
	r.NoError(err)
	r.False(ok)
}

func TestSQLite_ExecutionError(t *testing.T) {
	r := require.New(t)

	conn := newSQLiteConnection(t)

	_, err := conn.Execute(context.Background(), `SELECT * FROM MISSING`)

	var execErr *core.ExecutionError
	r.ErrorAs(err, &execErr)
	r.Equal(`SELECT * FROM MISSING`, execErr.Query)
	r.ErrorContains(err, "no such table")

	// the connection stays usable
	_, err = conn.Execute(context.Background(), `SELECT 1`)
	r.NoError(err)
}
