package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&Clickhouse{}, "clickhouse")
}

var _ core.Adapter = (*Clickhouse)(nil)

type Clickhouse struct{}

func (c *Clickhouse) Name() string { return "clickhouse" }

func (c *Clickhouse) Dialect() core.Dialect { return grammar.ClickHouse() }

// Connect pings the server before returning. The "dial_timeout" option
// bounds the ping.
func (c *Clickhouse) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	options, err := clickhouseOptions(params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, options.DialTimeout)
	defer cancel()

	db := clickhouse.OpenDB(options)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging connection failed with %w", err)
	}

	return newSQLDriver(db,
		builders.WithName(c.Name()),
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	), nil
}

func clickhouseOptions(params *core.ConnectionParams) (*clickhouse.Options, error) {
	if params.URL != "" {
		options, err := clickhouse.ParseDSN(params.URL)
		if err != nil {
			return nil, fmt.Errorf("clickhouse.ParseDSN: %w", err)
		}
		if options.DialTimeout == 0 {
			options.DialTimeout = 5 * time.Second
		}
		return options, nil
	}

	timeout, err := time.ParseDuration(params.Option("dial_timeout", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid dial_timeout option: %w", err)
	}

	return &clickhouse.Options{
		Addr: []string{params.Address()},
		Auth: clickhouse.Auth{
			Database: params.Database,
			Username: params.User,
			Password: params.Password,
		},
		DialTimeout: timeout,
	}, nil
}
