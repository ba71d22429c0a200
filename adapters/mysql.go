package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"maps"

	"github.com/go-sql-driver/mysql"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Name() string { return "mysql" }

func (m *MySQL) Dialect() core.Dialect { return grammar.MySQL() }

func (m *MySQL) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	dsn, err := mysqlDSN(params)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	return newSQLDriver(db,
		builders.WithName(m.Name()),
		builders.WithCustomTypeProcessor("json", jsonProcessor),
		// empty header means no result -> get affected rows
		builders.WithAffectedRowsQuery("SELECT ROW_COUNT() AS affected_rows"),
	), nil
}

// mysqlDSN formats the descriptor with the driver's own config type.
// Options are passed as connection parameters.
func mysqlDSN(params *core.ConnectionParams) (string, error) {
	if params.URL != "" {
		cfg, err := mysql.ParseDSN(params.URL)
		if err != nil {
			return "", fmt.Errorf("mysql.ParseDSN: %w", err)
		}
		cfg.MultiStatements = true
		return cfg.FormatDSN(), nil
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = params.Address()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.DBName = params.Database
	cfg.MultiStatements = true
	if len(params.Options) > 0 {
		cfg.Params = maps.Clone(params.Options)
	}

	return cfg.FormatDSN(), nil
}
