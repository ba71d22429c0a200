//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3")
}

var _ core.Adapter = (*SQLite)(nil)

type SQLite struct{}

func (s *SQLite) Name() string { return "sqlite" }

func (s *SQLite) Dialect() core.Dialect { return grammar.SQLite() }

// Connect opens the file in URL, or Database if no URL is set.
func (s *SQLite) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	dsn := params.URL
	if dsn == "" {
		dsn = params.Database
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite database: %w", err)
	}
	// every pooled connection to ":memory:" would be a new database
	db.SetMaxOpenConns(1)

	return newSQLDriver(db,
		builders.WithName(s.Name()),
		builders.WithAffectedRowsQuery("SELECT changes() AS affected_rows"),
	), nil
}
