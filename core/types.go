package core

type (
	// Row is a single ordered set of values returned by the engine.
	Row []any

	// Header holds column names in column order.
	Header []string

	// Column describes a single result column.
	Column struct {
		Name      string
		Type      string
		Nullable  bool
		Collation string
		// Fields holds element descriptors of composite, array or map columns.
		Fields []*Column
	}

	// ResultStream is a raw result of an executed query in a form of an iterator.
	// Column metadata is returned exactly as the engine reported it.
	ResultStream interface {
		Columns() []*Column
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

// RawResult is a fully materialized, engine-native result.
type RawResult struct {
	Columns []*Column
	Rows    []Row
}

// HeaderFromColumns returns the names of the columns. Nil descriptors produce
// empty names so that the header stays aligned with row values.
func HeaderFromColumns(columns []*Column) Header {
	header := make(Header, len(columns))
	for i, col := range columns {
		if col == nil {
			continue
		}
		header[i] = col.Name
	}
	return header
}
