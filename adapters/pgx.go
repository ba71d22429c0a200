package adapters

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&PGX{}, "pgx")
}

var _ core.Adapter = (*PGX)(nil)

// PGX talks to postgres through the native pgx pool instead of database/sql.
type PGX struct{}

func (p *PGX) Name() string { return "pgx" }

func (p *PGX) Dialect() core.Dialect { return grammar.Postgres() }

func (p *PGX) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	config, err := pgxpool.ParseConfig(postgresURL(params))
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	// the pool dials on first use
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	return &pgxDriver{
		pool:  pool,
		types: pgtype.NewMap(),
	}, nil
}

var (
	_ core.Driver = (*pgxDriver)(nil)
	_ core.Pinger = (*pgxDriver)(nil)
)

type pgxDriver struct {
	pool  *pgxpool.Pool
	types *pgtype.Map
}

func (d *pgxDriver) Query(ctx context.Context, query string, bindings ...any) (core.ResultStream, error) {
	rows, err := d.pool.Query(ctx, query, bindings...)
	if err != nil {
		return nil, d.classify(err)
	}

	columns := d.columns(rows.FieldDescriptions())

	var (
		pending  bool
		finished bool
	)

	hasNext := func() bool {
		if finished {
			return false
		}
		if pending {
			return true
		}
		if rows.Next() {
			pending = true
			return true
		}
		if rows.Err() != nil {
			// report the failure from next
			pending = true
			return true
		}
		finished = true
		return false
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}
		pending = false

		if err := rows.Err(); err != nil {
			finished = true
			return nil, d.classify(err)
		}

		values, err := rows.Values()
		if err != nil {
			finished = true
			return nil, d.classify(err)
		}
		return core.Row(values), nil
	}

	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithColumns(columns).
		WithCloseFunc(rows.Close).
		Build(), nil
}

func (d *pgxDriver) columns(fields []pgconn.FieldDescription) []*core.Column {
	columns := make([]*core.Column, len(fields))
	for i, f := range fields {
		typ := fmt.Sprintf("oid:%d", f.DataTypeOID)
		if t, ok := d.types.TypeForOID(f.DataTypeOID); ok {
			typ = t.Name
		}
		columns[i] = &core.Column{
			Name: f.Name,
			Type: typ,
		}
	}
	return columns
}

func (d *pgxDriver) classify(err error) error {
	var (
		connectErr *pgconn.ConnectError
		netErr     net.Error
	)
	if errors.As(err, &connectErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, pgx.ErrTxClosed) {
		return core.NewConnectionError("pgx", err)
	}
	return err
}

func (d *pgxDriver) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func (d *pgxDriver) Close() {
	d.pool.Close()
}

// Pool returns the native pool for engine specific calls.
func (d *pgxDriver) Pool() *pgxpool.Pool {
	return d.pool
}
