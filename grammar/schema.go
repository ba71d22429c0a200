package grammar

import (
	"github.com/adata/dbconn/core"
)

var _ core.SchemaGrammar = (*Schema)(nil)

// Schema is a schema grammar described by introspection query texts.
// Queries that take the database as their first binding say so with the
// matching "ByDatabase" flag.
type Schema struct {
	grammar *Base

	tableExists           string
	tableExistsByDatabase bool
	tables                string
	tablesByDatabase      bool
	dropIfExists          bool
}

func (s *Schema) CompileTableExists(database, table string) (string, []any) {
	if s.tableExists == "" {
		return "", nil
	}
	if s.tableExistsByDatabase {
		return s.tableExists, []any{database, table}
	}
	return s.tableExists, []any{table}
}

func (s *Schema) CompileTables(database string) (string, []any) {
	if s.tables == "" {
		return "", nil
	}
	if s.tablesByDatabase {
		return s.tables, []any{database}
	}
	return s.tables, nil
}

func (s *Schema) CompileColumnListing(table string) (string, []any) {
	return "SELECT * FROM " + s.grammar.Wrap(table) + " WHERE 1 = 0", nil
}

func (s *Schema) CompileDrop(table string, ifExists bool) string {
	if !ifExists {
		return "DROP TABLE " + s.grammar.Wrap(table)
	}
	if !s.dropIfExists {
		return ""
	}
	return "DROP TABLE IF EXISTS " + s.grammar.Wrap(table)
}
