package adapters

import (
	"context"
	"database/sql"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&Oracle{}, "oracle")
}

var _ core.Adapter = (*Oracle)(nil)

type Oracle struct{}

func (o *Oracle) Name() string { return "oracle" }

func (o *Oracle) Dialect() core.Dialect { return grammar.Oracle() }

// Connect uses Database as the service name.
func (o *Oracle) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	dsn := params.URL
	if dsn == "" {
		port := params.Port
		if port == 0 {
			port = 1521
		}
		dsn = go_ora.BuildUrl(params.Host, port, params.Database, params.User, params.Password, params.Options)
	}

	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to oracle database: %w", err)
	}

	return newSQLDriver(db, builders.WithName(o.Name())), nil
}
