package builders

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/adata/dbconn/core"
)

// Client is the default database/sql client used by specific sql adapters.
type Client struct {
	db             *sql.DB
	name           string
	typeProcessors map[string]func(any) any
	affectedQuery  string
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		name:           config.name,
		typeProcessors: config.typeProcessors,
		affectedQuery:  config.affectedQuery,
	}
}

// DB returns the underlying pool.
func (c *Client) DB() *sql.DB {
	return c.db
}

func (c *Client) Ping(ctx context.Context) error {
	return c.classify(c.db.PingContext(ctx))
}

func (c *Client) Close() {
	_ = c.db.Close()
}

// classify turns errors caused by a lost or unreachable session into
// connection errors.
func (c *Client) classify(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.As(err, &netErr) {
		return core.NewConnectionError(c.name, err)
	}

	return err
}

func (c *Client) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a query on a dedicated connection and returns a result
// stream. The connection is held until the stream is closed.
func (c *Client) Query(ctx context.Context, query string, args ...any) (*ResultStream, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, c.classify(err)
	}

	rows, err := c.query(ctx, conn, query, args)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	rows.SetCallback(func() {
		_ = conn.Close()
	})

	return rows, nil
}

func (c *Client) query(ctx context.Context, conn *sql.Conn, query string, args []any) (*ResultStream, error) {
	dbRows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, c.classify(err)
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, c.classify(err)
	}

	// no columns means a statement -> get affected rows if the engine can report them
	if len(dbCols) == 0 && c.affectedQuery != "" {
		_ = dbRows.Close()
		return c.query(ctx, conn, c.affectedQuery, nil)
	}

	processors := make([]func(any) any, len(dbCols))
	for i, col := range dbCols {
		processors[i] = c.getTypeProcessor(col.DatabaseTypeName())
	}

	var (
		pending  bool
		finished bool
		iterErr  error
	)

	hasNextFunc := func() bool {
		if finished {
			return false
		}
		if pending {
			return true
		}
		if dbRows.Next() {
			pending = true
			return true
		}
		if err := dbRows.Err(); err != nil {
			// report the failure from next
			iterErr, pending = err, true
			return true
		}
		finished = true
		return false
	}

	nextFunc := func() (core.Row, error) {
		if !hasNextFunc() {
			return nil, core.ErrNoNextRow
		}
		pending = false

		if iterErr != nil {
			finished = true
			return nil, c.classify(iterErr)
		}

		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			finished = true
			return nil, c.classify(err)
		}

		row := make(core.Row, len(dbCols))
		for i := range dbCols {
			row[i] = processors[i](columns[i])
		}

		return row, nil
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithColumns(ColumnsFromTypes(dbCols)).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
