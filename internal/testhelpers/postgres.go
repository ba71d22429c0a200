package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
)

const postgresDatabase = "Orders"

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
	Conn    *core.Connection
}

// NewPostgresContainer creates a new postgres container with
// default adapter and connection. The params.URL is overwritten.
func NewPostgresContainer(ctx context.Context, params *core.ConnectionParams) (*PostgresContainer, error) {
	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithDatabase(postgresDatabase),
	)
	if err != nil {
		return nil, err
	}
	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "postgres"
	}
	params.URL = connURL
	params.Database = postgresDatabase

	conn, err := adapters.NewConnection(ctx, params)
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
		Conn:              conn,
	}, nil
}

// NewConnection helper function to create a new connection with the connection URL.
func (p *PostgresContainer) NewConnection(ctx context.Context, params *core.ConnectionParams, opts ...core.ConnectionOption) (*core.Connection, error) {
	if params.URL == "" {
		params.URL = p.ConnURL
	}
	if params.Type == "" {
		params.Type = "postgres"
	}
	if params.Database == "" {
		params.Database = postgresDatabase
	}

	return adapters.NewConnection(ctx, params, opts...)
}
