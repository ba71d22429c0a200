package adapters

import (
	"context"
	"database/sql"
	"fmt"
	nurl "net/url"

	_ "github.com/lib/pq"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Dialect() core.Dialect { return grammar.Postgres() }

func (p *Postgres) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	db, err := sql.Open("postgres", postgresURL(params))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	return newSQLDriver(db,
		builders.WithName(p.Name()),
		builders.WithCustomTypeProcessor("json", jsonProcessor),
		builders.WithCustomTypeProcessor("jsonb", jsonProcessor),
	), nil
}

// postgresURL formats the descriptor as a postgres:// url. Options become
// query parameters, e.g. sslmode.
func postgresURL(params *core.ConnectionParams) string {
	if params.URL != "" {
		return params.URL
	}

	u := &nurl.URL{
		Scheme: "postgres",
		Host:   params.Address(),
		Path:   "/" + params.Database,
	}
	if params.User != "" {
		u.User = nurl.UserPassword(params.User, params.Password)
	}

	query := nurl.Values{}
	for k, v := range params.Options {
		query.Set(k, v)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
