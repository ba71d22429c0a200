package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Executor runs query text. Connection is the usual implementation.
type Executor interface {
	Execute(ctx context.Context, query string, bindings ...any) (*Result, error)
	Stream(ctx context.Context, query string, bindings ...any) (*Cursor, error)
}

// QueryBuilder collects a query fluently and compiles it with the grammar of
// the connection it was created from.
type QueryBuilder struct {
	exec      Executor
	grammar   Grammar
	processor Processor
	query     SelectQuery
}

func NewQueryBuilder(exec Executor, grammar Grammar, processor Processor) *QueryBuilder {
	if processor == nil {
		processor = RecordProcessor{}
	}
	return &QueryBuilder{
		exec:      exec,
		grammar:   grammar,
		processor: processor,
	}
}

func (b *QueryBuilder) From(table string) *QueryBuilder {
	b.query.Table = table
	return b
}

func (b *QueryBuilder) Select(columns ...string) *QueryBuilder {
	b.query.Columns = append(b.query.Columns, columns...)
	return b
}

func (b *QueryBuilder) Distinct() *QueryBuilder {
	b.query.Distinct = true
	return b
}

// Where adds an AND condition. Operator defaults to "=" when empty.
func (b *QueryBuilder) Where(column, operator string, value any) *QueryBuilder {
	return b.where(column, operator, value, false)
}

func (b *QueryBuilder) OrWhere(column, operator string, value any) *QueryBuilder {
	return b.where(column, operator, value, true)
}

func (b *QueryBuilder) where(column, operator string, value any, or bool) *QueryBuilder {
	if operator == "" {
		operator = "="
	}
	b.query.Wheres = append(b.query.Wheres, Where{
		Column:   column,
		Operator: strings.ToLower(operator),
		Value:    value,
		Or:       or,
	})
	return b
}

func (b *QueryBuilder) WhereIn(column string, values ...any) *QueryBuilder {
	b.query.Wheres = append(b.query.Wheres, Where{
		Column:   column,
		Operator: "in",
		Values:   values,
	})
	return b
}

func (b *QueryBuilder) WhereNotIn(column string, values ...any) *QueryBuilder {
	b.query.Wheres = append(b.query.Wheres, Where{
		Column:   column,
		Operator: "not in",
		Values:   values,
	})
	return b
}

func (b *QueryBuilder) WhereNull(column string) *QueryBuilder {
	b.query.Wheres = append(b.query.Wheres, Where{
		Column:   column,
		Operator: "is null",
	})
	return b
}

func (b *QueryBuilder) WhereNotNull(column string) *QueryBuilder {
	b.query.Wheres = append(b.query.Wheres, Where{
		Column:   column,
		Operator: "is not null",
	})
	return b
}

func (b *QueryBuilder) OrderBy(column string) *QueryBuilder {
	b.query.Orders = append(b.query.Orders, Order{Column: column})
	return b
}

func (b *QueryBuilder) OrderByDesc(column string) *QueryBuilder {
	b.query.Orders = append(b.query.Orders, Order{Column: column, Desc: true})
	return b
}

func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.query.Limit = n
	return b
}

func (b *QueryBuilder) Offset(n int) *QueryBuilder {
	b.query.Offset = n
	return b
}

// State returns a copy of the collected query.
func (b *QueryBuilder) State() SelectQuery {
	return b.query
}

// ToSQL compiles the select query.
func (b *QueryBuilder) ToSQL() (string, []any, error) {
	if b.grammar == nil {
		return "", nil, ErrMissingGrammar
	}
	if b.query.Table == "" {
		return "", nil, fmt.Errorf("query has no table")
	}

	query, bindings := b.grammar.CompileSelect(&b.query)
	return query, bindings, nil
}

// Result runs the select and returns the normalized result.
func (b *QueryBuilder) Result(ctx context.Context) (*Result, error) {
	query, bindings, err := b.ToSQL()
	if err != nil {
		return nil, err
	}

	return b.exec.Execute(ctx, query, bindings...)
}

// Get runs the select and returns processed records.
func (b *QueryBuilder) Get(ctx context.Context) ([]map[string]any, error) {
	result, err := b.Result(ctx)
	if err != nil {
		return nil, err
	}

	return b.processor.ProcessSelect(result), nil
}

// First returns the first record or nil if there is none.
func (b *QueryBuilder) First(ctx context.Context) (map[string]any, error) {
	records, err := b.Limit(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}
	return records[0], nil
}

// Cursor runs the select and returns a lazy cursor.
func (b *QueryBuilder) Cursor(ctx context.Context) (*Cursor, error) {
	query, bindings, err := b.ToSQL()
	if err != nil {
		return nil, err
	}

	return b.exec.Stream(ctx, query, bindings...)
}

// Insert inserts a single record. Columns are written in sorted order.
func (b *QueryBuilder) Insert(ctx context.Context, values map[string]any) (*Result, error) {
	if b.grammar == nil {
		return nil, ErrMissingGrammar
	}

	columns, vals := splitValues(values)
	query, bindings := b.grammar.CompileInsert(b.query.Table, columns, vals)

	return b.exec.Execute(ctx, query, bindings...)
}

// Update updates records matched by the where conditions.
func (b *QueryBuilder) Update(ctx context.Context, values map[string]any) (*Result, error) {
	if b.grammar == nil {
		return nil, ErrMissingGrammar
	}

	columns, vals := splitValues(values)
	query, bindings := b.grammar.CompileUpdate(&b.query, columns, vals)

	return b.exec.Execute(ctx, query, bindings...)
}

// Delete deletes records matched by the where conditions.
func (b *QueryBuilder) Delete(ctx context.Context) (*Result, error) {
	if b.grammar == nil {
		return nil, ErrMissingGrammar
	}

	query, bindings := b.grammar.CompileDelete(&b.query)

	return b.exec.Execute(ctx, query, bindings...)
}

func splitValues(values map[string]any) ([]string, []any) {
	columns := make([]string, 0, len(values))
	for k := range values {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	vals := make([]any, len(columns))
	for i, col := range columns {
		vals[i] = values[col]
	}
	return columns, vals
}
