package builders

import (
	"sync"

	"github.com/adata/dbconn/core"
)

var _ core.ResultStream = (*ResultStream)(nil)

// ResultStream fills core.ResultStream interface for all drivers
type ResultStream struct {
	next     func() (core.Row, error)
	hasNext  func() bool
	close    func()
	callback func()
	columns  []*core.Column
	once     sync.Once
	closed   bool
}

func (r *ResultStream) SetCustomColumns(columns []*core.Column) {
	r.columns = columns
}

// SetCallback registers a function that runs once when the stream is closed.
func (r *ResultStream) SetCallback(callback func()) {
	r.callback = callback
}

func (r *ResultStream) Columns() []*core.Column {
	return r.columns
}

func (r *ResultStream) HasNext() bool {
	if r.closed {
		return false
	}
	return r.hasNext()
}

func (r *ResultStream) Next() (core.Row, error) {
	if r.closed {
		return nil, core.ErrNoNextRow
	}
	row, err := r.next()
	if err != nil || row == nil {
		r.Close()
		return nil, err
	}
	return row, nil
}

func (r *ResultStream) Close() {
	r.once.Do(func() {
		r.closed = true
		r.close()
		if r.callback != nil {
			r.callback()
		}
	})
}

// ResultStreamBuilder builds the rows
type ResultStreamBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	columns []*core.Column
	close   func()
}

func NewResultStreamBuilder() *ResultStreamBuilder {
	return &ResultStreamBuilder{
		next:    func() (core.Row, error) { return nil, core.ErrNoNextRow },
		hasNext: func() bool { return false },
		columns: []*core.Column{},
		close:   func() {},
	}
}

func (b *ResultStreamBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *ResultStreamBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *ResultStreamBuilder) WithColumns(columns []*core.Column) *ResultStreamBuilder {
	b.columns = columns
	return b
}

// WithHeader sets untyped columns with the given names.
func (b *ResultStreamBuilder) WithHeader(header core.Header) *ResultStreamBuilder {
	columns := make([]*core.Column, len(header))
	for i, name := range header {
		columns[i] = &core.Column{Name: name}
	}
	b.columns = columns
	return b
}

func (b *ResultStreamBuilder) WithCloseFunc(fn func()) *ResultStreamBuilder {
	b.close = fn
	return b
}

func (b *ResultStreamBuilder) Build() *ResultStream {
	return &ResultStream{
		next:    b.next,
		hasNext: b.hasNext,
		columns: b.columns,
		close:   b.close,
	}
}
