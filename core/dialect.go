package core

type (
	// Where is a single condition of a select, update or delete.
	Where struct {
		Column   string
		Operator string
		Value    any
		// Values is used by the "in" and "not in" operators.
		Values []any
		// Or joins the condition with OR instead of AND.
		Or bool
	}

	// Order is a single ORDER BY entry.
	Order struct {
		Column string
		Desc   bool
	}

	// SelectQuery is the state collected by a QueryBuilder.
	// Limit and Offset are ignored when zero.
	SelectQuery struct {
		Table    string
		Columns  []string
		Distinct bool
		Wheres   []Where
		Orders   []Order
		Limit    int
		Offset   int
	}

	// Grammar compiles builder state into engine specific query text and bindings.
	Grammar interface {
		CompileSelect(q *SelectQuery) (string, []any)
		CompileInsert(table string, columns []string, values []any) (string, []any)
		CompileUpdate(q *SelectQuery, columns []string, values []any) (string, []any)
		CompileDelete(q *SelectQuery) (string, []any)
	}

	// Processor post-processes results of builder queries.
	Processor interface {
		ProcessSelect(result *Result) []map[string]any
	}

	// SchemaGrammar compiles introspection and DDL statements.
	// Empty query text means the operation is not supported.
	SchemaGrammar interface {
		CompileTableExists(database, table string) (string, []any)
		CompileTables(database string) (string, []any)
		// CompileColumnListing returns a query that selects no rows but
		// carries the table's column metadata.
		CompileColumnListing(table string) (string, []any)
		CompileDrop(table string, ifExists bool) string
	}

	// Dialect is the default grammar and processor configuration handed to
	// query and schema builders.
	Dialect struct {
		Grammar   Grammar
		Processor Processor
		Schema    SchemaGrammar
	}
)

// RecordProcessor maps rows to records keyed by lower case column names.
type RecordProcessor struct{}

var _ Processor = RecordProcessor{}

func (RecordProcessor) ProcessSelect(result *Result) []map[string]any {
	return result.Records()
}
