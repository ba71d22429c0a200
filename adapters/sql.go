package adapters

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
)

var (
	_ core.Driver = (*sqlDriver)(nil)
	_ core.Pinger = (*sqlDriver)(nil)
)

// sqlDriver is the driver of every database/sql based adapter.
type sqlDriver struct {
	c *builders.Client
}

func newSQLDriver(db *sql.DB, opts ...builders.ClientOption) *sqlDriver {
	return &sqlDriver{
		c: builders.NewClient(db, opts...),
	}
}

func (d *sqlDriver) Query(ctx context.Context, query string, bindings ...any) (core.ResultStream, error) {
	rows, err := d.c.Query(ctx, query, bindings...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *sqlDriver) Ping(ctx context.Context) error {
	return d.c.Ping(ctx)
}

func (d *sqlDriver) Close() {
	d.c.Close()
}

// DB returns the underlying pool for engine specific calls.
func (d *sqlDriver) DB() *sql.DB {
	return d.c.DB()
}

// jsonValue wraps json columns to pretty-print the return values
type jsonValue []byte

// jsonProcessor is a type processor for json column types
func jsonProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	return jsonValue(b)
}

func (v jsonValue) String() string {
	var parsed bytes.Buffer
	err := json.Indent(&parsed, v, "", "  ")
	if err != nil {
		return string(v)
	}
	return parsed.String()
}

func (v jsonValue) MarshalJSON() ([]byte, error) {
	if json.Valid(v) {
		return v, nil
	}

	return json.Marshal(string(v))
}
