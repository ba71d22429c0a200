package mock

import (
	"fmt"
	"time"

	"github.com/adata/dbconn/core"
)

var _ core.ResultStream = (*ResultStream)(nil)

// ResultStream is a mocked stream which produces rows on demand.
type ResultStream struct {
	produce func(index int) core.Row
	total   int
	index   int
	closed  bool
	config  *resultStreamConfig
}

func makeDefaultColumns(rows []core.Row) []*core.Column {
	var columns []*core.Column
	if len(rows) > 0 {
		for i := range rows[0] {
			columns = append(columns, &core.Column{Name: fmt.Sprintf("HEADER_%d", i)})
		}
	}
	return columns
}

func newResultStream(total int, produce func(int) core.Row, columns []*core.Column, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		columns: columns,
		failAt:  -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &ResultStream{
		produce: produce,
		total:   total,
		config:  config,
	}
}

// NewResultStream returns a mocked result stream with provided rows.
// It creates upper case columns that match the number of values in the first
// row in form of: <HEADER_0>, <HEADER_1>, etc.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	produce := func(i int) core.Row { return rows[i] }
	return newResultStream(len(rows), produce, makeDefaultColumns(rows), opts...)
}

// NewGeneratedResultStream returns a stream of n rows that are created only
// when they are pulled, in form of NewRows.
func NewGeneratedResultStream(n int, opts ...ResultStreamOption) *ResultStream {
	produce := func(i int) core.Row { return core.Row{i, fmt.Sprintf("row_%d", i)} }
	columns := []*core.Column{{Name: "ID", Type: "integer"}, {Name: "Name", Type: "string"}}
	return newResultStream(n, produce, columns, opts...)
}

func (rs *ResultStream) Columns() []*core.Column {
	return rs.config.columns
}

func (rs *ResultStream) HasNext() bool {
	return !rs.closed && rs.index < rs.total
}

func (rs *ResultStream) Next() (core.Row, error) {
	time.Sleep(rs.config.nextSleep)

	if !rs.HasNext() {
		return nil, core.ErrNoNextRow
	}
	if rs.index == rs.config.failAt {
		rs.index = rs.total
		return nil, rs.config.failErr
	}

	row := rs.produce(rs.index)
	rs.index++

	if rs.config.onNext != nil {
		rs.config.onNext(rs.index)
	}

	return row, nil
}

func (rs *ResultStream) Close() {
	rs.closed = true
	if rs.config.onClose != nil {
		rs.config.onClose()
	}
}

// Pulled returns the number of rows produced so far.
func (rs *ResultStream) Pulled() int {
	return rs.index
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{i, fmt.Sprintf("row_%d", i)})
	}
	return rows
}
