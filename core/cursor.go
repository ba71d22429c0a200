package core

import (
	"iter"
	"sync"
)

// Cursor is a lazy, forward-only and single-use iterator over a normalized
// result. Rows are pulled from the underlying stream one at a time.
// A cursor must not be shared between goroutines.
type Cursor struct {
	stream  ResultStream
	query   string
	columns []*Column
	header  Header

	done bool
	err  error
	once sync.Once
}

func newCursor(query string, stream ResultStream) *Cursor {
	// metadata is folded once, not per row
	columns := NormalizeColumns(stream.Columns())

	return &Cursor{
		stream:  stream,
		query:   query,
		columns: columns,
		header:  HeaderFromColumns(columns),
	}
}

// Columns returns normalized column metadata.
func (c *Cursor) Columns() []*Column {
	return c.columns
}

func (c *Cursor) Header() Header {
	return c.header
}

// HasNext reports whether another row may be pulled. It is false forever
// once the cursor is exhausted, failed or closed.
func (c *Cursor) HasNext() bool {
	if c.done {
		return false
	}
	if !c.stream.HasNext() {
		c.finish(nil)
		return false
	}
	return true
}

// Next returns the next row. A failure stops the cursor and is returned
// from this call and from Err afterwards.
func (c *Cursor) Next() (Row, error) {
	if !c.HasNext() {
		return nil, ErrNoNextRow
	}

	row, err := c.stream.Next()
	if err != nil {
		err = executionError(c.query, err)
		c.finish(err)
		return nil, err
	}
	if row == nil {
		c.finish(nil)
		return nil, ErrNoNextRow
	}

	return row, nil
}

// Rows returns the remaining rows as an iterator. Ranging over an exhausted
// cursor yields nothing. If a row fails, the error is yielded once and the
// iteration ends.
func (c *Cursor) Rows() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for c.HasNext() {
			row, err := c.Next()
			if err == ErrNoNextRow {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the underlying stream. Safe to call multiple times.
func (c *Cursor) Close() {
	c.finish(nil)
}

func (c *Cursor) finish(err error) {
	c.done = true
	if err != nil && c.err == nil {
		c.err = err
	}
	c.once.Do(c.stream.Close)
}
