package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
	Conn    *core.Connection
}

// NewMySQLContainer creates a new MySQL container with
// default adapter and connection. The params.URL is overwritten.
func NewMySQLContainer(ctx context.Context, params *core.ConnectionParams) (*MySQLContainer, error) {
	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("Orders"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "mysql"
	}
	params.URL = connURL
	params.Database = "Orders"

	conn, err := adapters.NewConnection(ctx, params)
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
		Conn:           conn,
	}, nil
}
