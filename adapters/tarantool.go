package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tarantool/go-tarantool/v2"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&Tarantool{}, "tarantool", "tnt")
}

var _ core.Adapter = (*Tarantool)(nil)

// Tarantool runs statements through the SQL frontend of box.
// The client dials eagerly, so Connect reports unreachable servers.
type Tarantool struct{}

func (t *Tarantool) Name() string { return "tarantool" }

func (t *Tarantool) Dialect() core.Dialect { return grammar.Tarantool() }

// Connect understands the "timeout" option (request timeout, e.g. "3s").
// URL, when set, is used as the dial address.
func (t *Tarantool) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	timeout, err := time.ParseDuration(params.Option("timeout", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout option: %w", err)
	}

	address := params.URL
	if address == "" {
		address = params.Address()
	}

	dialer := tarantool.NetDialer{
		Address:  address,
		User:     params.User,
		Password: params.Password,
	}

	conn, err := tarantool.Connect(ctx, dialer, tarantool.Opts{
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("tarantool.Connect: %w", err)
	}

	return &tarantoolDriver{
		conn: conn,
	}, nil
}

var (
	_ core.Driver = (*tarantoolDriver)(nil)
	_ core.Pinger = (*tarantoolDriver)(nil)
)

type tarantoolDriver struct {
	conn *tarantool.Connection
}

func (d *tarantoolDriver) Query(ctx context.Context, query string, bindings ...any) (core.ResultStream, error) {
	if bindings == nil {
		bindings = []any{}
	}

	req := tarantool.NewExecuteRequest(query).
		Args(bindings).
		Context(ctx)

	resp, err := d.conn.Do(req).GetResponse()
	if err != nil {
		return nil, classifyTarantool(err)
	}

	execResp, ok := resp.(*tarantool.ExecuteResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", resp)
	}

	data, err := execResp.Decode()
	if err != nil {
		return nil, classifyTarantool(err)
	}
	meta, err := execResp.MetaData()
	if err != nil {
		return nil, fmt.Errorf("resp.MetaData: %w", err)
	}
	info, err := execResp.SQLInfo()
	if err != nil {
		return nil, fmt.Errorf("resp.SQLInfo: %w", err)
	}

	return tarantoolResult(meta, data, info), nil
}

// tarantoolResult builds a stream from a decoded execute response.
// Statements without metadata report the affected row count instead.
func tarantoolResult(meta []tarantool.ColumnMetaData, data []any, info tarantool.SQLInfo) *builders.ResultStream {
	if len(meta) == 0 {
		next, hasNext := builders.NextSingle(info.AffectedCount)
		return builders.NewResultStreamBuilder().
			WithNextFunc(next, hasNext).
			WithColumns([]*core.Column{{Name: "AFFECTED_ROWS", Type: "unsigned"}}).
			Build()
	}

	columns := make([]*core.Column, len(meta))
	for i, m := range meta {
		columns[i] = &core.Column{
			Name:      m.FieldName,
			Type:      m.FieldType,
			Nullable:  m.FieldIsNullable,
			Collation: m.FieldCollation,
		}
	}

	rows := make([]core.Row, 0, len(data))
	for _, tuple := range data {
		values, ok := tuple.([]any)
		if !ok {
			values = []any{tuple}
		}
		rows = append(rows, core.Row(values))
	}

	next, hasNext := builders.NextRows(rows)
	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithColumns(columns).
		Build()
}

// classifyTarantool turns client errors about the transport into connection
// errors. Box errors (tarantool.Error) are returned as they are, with their code.
func classifyTarantool(err error) error {
	var clientErr tarantool.ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Code {
		case tarantool.ErrConnectionNotReady,
			tarantool.ErrConnectionClosed,
			tarantool.ErrConnectionShutdown,
			tarantool.ErrIoError:
			return core.NewConnectionError("tarantool", err)
		}
	}
	return err
}

func (d *tarantoolDriver) Ping(ctx context.Context) error {
	_, err := d.conn.Do(tarantool.NewPingRequest().Context(ctx)).Get()
	return classifyTarantool(err)
}

func (d *tarantoolDriver) Close() {
	_ = d.conn.Close()
}

// Conn returns the native connection for box calls outside of SQL.
func (d *tarantoolDriver) Conn() *tarantool.Connection {
	return d.conn
}
