package grammar

import "github.com/adata/dbconn/core"

func dialect(g *Base, s *Schema) core.Dialect {
	s.grammar = g
	return core.Dialect{
		Grammar:   g,
		Processor: core.RecordProcessor{},
		Schema:    s,
	}
}

// Tarantool uses the SQL frontend of box. User spaces have ids from 512 up.
func Tarantool() core.Dialect {
	return dialect(New(WithOffsetOnlyLimit("18446744073709551615")), &Schema{
		tableExists:  `SELECT "name" FROM "_vspace" WHERE "name" = ?`,
		tables:       `SELECT "name" FROM "_vspace" WHERE "id" >= 512 ORDER BY "name"`,
		dropIfExists: true,
	})
}

func Postgres() core.Dialect {
	return dialect(New(WithPlaceholder(Dollar)), &Schema{
		tableExists: `SELECT table_name FROM information_schema.tables
			WHERE table_catalog = $1 AND table_name = $2 AND table_type = 'BASE TABLE'`,
		tableExistsByDatabase: true,
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_catalog = $1 AND table_type = 'BASE TABLE'
			AND table_schema NOT IN ('pg_catalog', 'information_schema')
			ORDER BY table_name`,
		tablesByDatabase: true,
		dropIfExists:     true,
	})
}

func MySQL() core.Dialect {
	return dialect(New(WithQuotes("`", "`"), WithOffsetOnlyLimit("18446744073709551615")), &Schema{
		tableExists: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = ? AND table_name = ? AND table_type = 'BASE TABLE'`,
		tableExistsByDatabase: true,
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name`,
		tablesByDatabase: true,
		dropIfExists:     true,
	})
}

func SQLite() core.Dialect {
	return dialect(New(WithOffsetOnlyLimit("-1")), &Schema{
		tableExists:  `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
		tables:       `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		dropIfExists: true,
	})
}

func SQLServer() core.Dialect {
	return dialect(New(WithQuotes("[", "]"), WithPlaceholder(AtP), WithFetch("(SELECT 0)")), &Schema{
		tableExists: `SELECT table_name FROM information_schema.tables
			WHERE table_catalog = @p1 AND table_name = @p2 AND table_type = 'BASE TABLE'`,
		tableExistsByDatabase: true,
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_catalog = @p1 AND table_type = 'BASE TABLE' ORDER BY table_name`,
		tablesByDatabase: true,
		dropIfExists:     true,
	})
}

// Oracle has no DROP TABLE IF EXISTS before 23c, so it is not offered.
func Oracle() core.Dialect {
	return dialect(New(WithPlaceholder(ColonNumber), WithFetch("")), &Schema{
		tableExists: `SELECT table_name FROM user_tables WHERE table_name = UPPER(:1)`,
		tables:      `SELECT table_name FROM user_tables ORDER BY table_name`,
	})
}

func ClickHouse() core.Dialect {
	return dialect(New(WithQuotes("`", "`")), &Schema{
		tableExists:           `SELECT name FROM system.tables WHERE database = ? AND name = ?`,
		tableExistsByDatabase: true,
		tables:                `SELECT name FROM system.tables WHERE database = ? ORDER BY name`,
		tablesByDatabase:      true,
		dropIfExists:          true,
	})
}

// KeyValue is used by engines without a query language. Builders report
// ErrMissingGrammar.
func KeyValue() core.Dialect {
	return core.Dialect{
		Processor: core.RecordProcessor{},
	}
}
