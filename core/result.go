package core

import (
	"fmt"
)

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		ChunkStart int
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

// Result is the normalized, materialized form of a query result.
// Column names are always lower case.
type Result struct {
	columns []*Column
	header  Header
	rows    []Row
}

func newResult(columns []*Column, rows []Row) *Result {
	if rows == nil {
		rows = []Row{}
	}
	return &Result{
		columns: columns,
		header:  HeaderFromColumns(columns),
		rows:    rows,
	}
}

// collect drains the stream into a raw result. The stream is closed on return.
func collect(stream ResultStream) (*RawResult, error) {
	defer stream.Close()

	raw := &RawResult{
		Columns: stream.Columns(),
		Rows:    []Row{},
	}

	for stream.HasNext() {
		row, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}

		raw.Rows = append(raw.Rows, row)
	}

	return raw, nil
}

func (r *Result) Columns() []*Column {
	return r.columns
}

func (r *Result) Header() Header {
	return r.header
}

// Rows returns all rows of the result.
func (r *Result) Rows() []Row {
	return r.rows
}

func (r *Result) Len() int {
	return len(r.rows)
}

func (r *Result) IsEmpty() bool {
	return len(r.rows) == 0
}

// Records returns rows as maps keyed by the (lower case) column name.
// Columns without a name, or whose name was already taken by an earlier
// column, are keyed by position.
func (r *Result) Records() []map[string]any {
	keys := make(map[int]string)
	seen := make(map[string]bool, len(r.header))
	key := func(i int) string {
		if k, ok := keys[i]; ok {
			return k
		}
		var k string
		switch {
		case i >= len(r.header) || r.header[i] == "":
			k = fmt.Sprintf("<unknown-field-%d>", i)
		case seen[r.header[i]]:
			k = fmt.Sprintf("<duplicate-field-%d>", i)
		default:
			k = r.header[i]
			seen[k] = true
		}
		keys[i] = k
		return k
	}

	records := make([]map[string]any, 0, len(r.rows))
	for _, row := range r.rows {
		record := make(map[string]any, len(row))
		for i, val := range row {
			record[key(i)] = val
		}
		records = append(records, record)
	}
	return records
}

func (r *Result) Format(formatter Formatter, from, to int) ([]byte, error) {
	rows, fromAdjusted, _, err := r.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("r.getRows: %w", err)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
	}

	f, err := formatter.Format(r.header, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

// Range returns rows in the [from, to) range.
// Negative indexes are counted from the end: -1 is one past the last row.
func (r *Result) Range(from, to int) ([]Row, error) {
	rows, _, _, err := r.getRows(from, to)
	return rows, err
}

// getRows returns the row range and adjusted from-to values
func (r *Result) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	// calculate range
	length := len(r.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return r.rows[from:to], from, to, nil
}
