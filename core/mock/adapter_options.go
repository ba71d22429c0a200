package mock

import (
	"context"

	"github.com/adata/dbconn/core"
)

type adapterConfig struct {
	name             string
	dialect          core.Dialect
	querySideEffects map[string]func(context.Context) error
	queryStreams     map[string]func() core.ResultStream
	generatedRows    int

	connectErr     error
	lazyConnectErr error
	pingErr        error

	resultStreamOptions []ResultStreamOption
}

type AdapterOption func(*adapterConfig)

func AdapterWithName(name string) AdapterOption {
	return func(c *adapterConfig) {
		c.name = name
	}
}

func AdapterWithDialect(d core.Dialect) AdapterOption {
	return func(c *adapterConfig) {
		c.dialect = d
	}
}

func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

// AdapterWithQueryStream registers a stream factory for a specific query.
func AdapterWithQueryStream(query string, fn func() core.ResultStream) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.queryStreams[query]
		if ok {
			panic("stream already registered for query: " + query)
		}

		c.queryStreams[query] = fn
	}
}

// AdapterWithGeneratedRows makes every query return n lazily generated rows.
func AdapterWithGeneratedRows(n int) AdapterOption {
	return func(c *adapterConfig) {
		c.generatedRows = n
	}
}

// AdapterWithConnectError makes Connect fail eagerly.
func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

// AdapterWithLazyConnectError makes Connect succeed and every later call fail
// with a connection error, like clients that dial on first use.
func AdapterWithLazyConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.lazyConnectErr = err
	}
}

func AdapterWithPingError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.pingErr = err
	}
}

func AdapterWithResultStreamOpts(opts ...ResultStreamOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultStreamOptions = append(c.resultStreamOptions, opts...)
	}
}
