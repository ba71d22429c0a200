package mock

import (
	"context"
	"fmt"

	"github.com/adata/dbconn/core"
)

var (
	_ core.Driver = (*Driver)(nil)
	_ core.Pinger = (*Driver)(nil)
)

// Call is a recorded query submission.
type Call struct {
	Query    string
	Bindings []any
}

// Driver is a mocked client handle.
type Driver struct {
	data   []core.Row
	params *core.ConnectionParams
	config *adapterConfig

	calls  []Call
	closed bool
}

func (d *Driver) Query(ctx context.Context, query string, bindings ...any) (core.ResultStream, error) {
	d.calls = append(d.calls, Call{Query: query, Bindings: bindings})

	if d.config.lazyConnectErr != nil {
		return nil, &core.ConnectionError{Driver: d.config.name, Cause: d.config.lazyConnectErr}
	}

	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	if fn, ok := d.config.queryStreams[query]; ok {
		return fn(), nil
	}

	if d.config.generatedRows > 0 {
		return NewGeneratedResultStream(d.config.generatedRows, d.config.resultStreamOptions...), nil
	}

	return NewResultStream(d.data, d.config.resultStreamOptions...), nil
}

func (d *Driver) Ping(ctx context.Context) error {
	if d.config.lazyConnectErr != nil {
		return d.config.lazyConnectErr
	}
	return d.config.pingErr
}

func (d *Driver) Close() {
	d.closed = true
}

// Calls returns all submitted queries in order.
func (d *Driver) Calls() []Call {
	return d.calls
}

// Params returns the descriptor the driver was built from.
func (d *Driver) Params() *core.ConnectionParams {
	return d.params
}

func (d *Driver) IsClosed() bool {
	return d.closed
}

var _ core.Adapter = (*Adapter)(nil)

type Adapter struct {
	data   []core.Row
	config *adapterConfig
}

func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		name:             "mock",
		querySideEffects: make(map[string]func(context.Context) error),
		queryStreams:     make(map[string]func() core.ResultStream),

		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}

	return &Driver{
		data:   a.data,
		params: params,
		config: a.config,
	}, nil
}

func (a *Adapter) Name() string {
	return a.config.name
}

func (a *Adapter) Dialect() core.Dialect {
	return a.config.dialect
}
