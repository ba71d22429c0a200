package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type (
	// Adapter is an object which allows to connect to a specific engine.
	Adapter interface {
		Connect(ctx context.Context, params *ConnectionParams) (Driver, error)
		// Name is the driver identity reported by connections.
		Name() string
		// Dialect returns the default grammar and processor of the engine.
		Dialect() Dialect
	}

	// Driver is the client handle of a specific engine.
	Driver interface {
		Query(ctx context.Context, query string, bindings ...any) (ResultStream, error)
		Close()
	}

	// Pinger is an optional interface for drivers that can check liveness.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Connector is the capability set generic data access code relies on.
	Connector interface {
		Execute(ctx context.Context, query string, bindings ...any) (*Result, error)
		Stream(ctx context.Context, query string, bindings ...any) (*Cursor, error)
		DatabaseName() string
		DriverName() string
		Query() *QueryBuilder
		Schema() *SchemaBuilder
	}
)

var _ Connector = (*Connection)(nil)

// Connection owns a driver and mediates every interaction with it.
// It does no locking: a single connection must not be used by multiple
// goroutines at once.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver  Driver
	name    string
	dialect Dialect
	log     Logger
	closed  bool
}

type connectionConfig struct {
	dialect       *Dialect
	logger        Logger
	pingOnConnect bool
}

type ConnectionOption func(*connectionConfig)

// WithDialect overrides the default dialect of the adapter.
func WithDialect(d Dialect) ConnectionOption {
	return func(c *connectionConfig) {
		c.dialect = &d
	}
}

func WithLogger(l Logger) ConnectionOption {
	return func(c *connectionConfig) {
		c.logger = l
	}
}

// WithPingOnConnect makes NewConnection fail eagerly on drivers that connect
// lazily. Drivers without ping support are left alone.
func WithPingOnConnect() ConnectionOption {
	return func(c *connectionConfig) {
		c.pingOnConnect = true
	}
}

// NewConnection validates the descriptor and builds the driver with the adapter.
// All failures are returned as *ConnectionError.
func NewConnection(ctx context.Context, params *ConnectionParams, adapter Adapter, opts ...ConnectionOption) (*Connection, error) {
	config := connectionConfig{
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(&config)
	}

	name := adapter.Name()
	expanded, err := params.ExpandStrict()
	if err != nil {
		return nil, NewConnectionError(name, fmt.Errorf("%w: %w", ErrInvalidParams, err))
	}

	if err := expanded.Validate(); err != nil {
		return nil, NewConnectionError(name, err)
	}

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	config.logger.Debugf("connecting %q (%s) to %s/%s", expanded.Name, name, expanded.Address(), expanded.Database)

	driver, err := adapter.Connect(ctx, expanded.clone())
	if err != nil {
		config.logger.Warnf("connection %q failed: %s", expanded.Name, err)
		return nil, NewConnectionError(name, err)
	}

	dialect := adapter.Dialect()
	if config.dialect != nil {
		dialect = *config.dialect
	}
	if dialect.Processor == nil {
		dialect.Processor = RecordProcessor{}
	}

	c := &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver:  driver,
		name:    name,
		dialect: dialect,
		log:     config.logger,
	}

	if config.pingOnConnect {
		err := c.Ping(ctx)
		if err != nil && err != ErrPingNotSupported {
			driver.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

// DatabaseName returns the target database of the descriptor.
func (c *Connection) DatabaseName() string {
	return c.params.Database
}

// DriverName returns the identity of the engine adapter.
func (c *Connection) DriverName() string {
	return c.name
}

// Dialect returns the grammar and processor used by builders.
func (c *Connection) Dialect() Dialect {
	return c.dialect
}

// Client returns the driver for engine specific calls.
// The connection keeps ownership: do not close it.
func (c *Connection) Client() Driver {
	return c.driver
}

func (c *Connection) query(ctx context.Context, query string, bindings []any) (ResultStream, error) {
	if c.closed {
		return nil, NewConnectionError(c.name, ErrConnectionClosed)
	}

	stream, err := c.driver.Query(ctx, query, bindings...)
	if err != nil {
		c.log.Debugf("query failed on %q: %s", c.params.Name, err)
		return nil, executionError(query, err)
	}

	return stream, nil
}

// Execute runs the query and returns the normalized, materialized result.
// Failures are never retried.
func (c *Connection) Execute(ctx context.Context, query string, bindings ...any) (*Result, error) {
	stream, err := c.query(ctx, query, bindings)
	if err != nil {
		return nil, err
	}

	raw, err := collect(stream)
	if err != nil {
		return nil, executionError(query, err)
	}

	return Normalize(raw), nil
}

// Stream runs the query and returns a cursor which pulls rows lazily.
// The caller must exhaust or close the cursor before issuing the next query.
func (c *Connection) Stream(ctx context.Context, query string, bindings ...any) (*Cursor, error) {
	stream, err := c.query(ctx, query, bindings)
	if err != nil {
		return nil, err
	}

	return newCursor(query, stream), nil
}

// Query returns a fresh query builder bound to this connection.
func (c *Connection) Query() *QueryBuilder {
	return NewQueryBuilder(c, c.dialect.Grammar, c.dialect.Processor)
}

// Table begins a fluent query against a table.
func (c *Connection) Table(table string) *QueryBuilder {
	return c.Query().From(table)
}

// Schema returns a schema builder bound to this connection.
func (c *Connection) Schema() *SchemaBuilder {
	return NewSchemaBuilder(c, c.params.Database, c.dialect.Schema)
}

// Ping checks the connection if the driver supports it.
func (c *Connection) Ping(ctx context.Context) error {
	if c.closed {
		return NewConnectionError(c.name, ErrConnectionClosed)
	}

	pinger, ok := c.driver.(Pinger)
	if !ok {
		return ErrPingNotSupported
	}

	if err := pinger.Ping(ctx); err != nil {
		return NewConnectionError(c.name, err)
	}

	return nil
}

func (c *Connection) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.driver.Close()
	c.log.Debugf("connection %q closed", c.params.Name)
}
