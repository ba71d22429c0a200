package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// SchemaBuilder runs introspection and DDL statements on a connection.
type SchemaBuilder struct {
	exec     Executor
	database string
	grammar  SchemaGrammar
}

func NewSchemaBuilder(exec Executor, database string, grammar SchemaGrammar) *SchemaBuilder {
	return &SchemaBuilder{
		exec:     exec,
		database: database,
		grammar:  grammar,
	}
}

func (s *SchemaBuilder) compile(fn func(SchemaGrammar) (string, []any)) (string, []any, error) {
	if s.grammar == nil {
		return "", nil, ErrMissingGrammar
	}
	query, bindings := fn(s.grammar)
	if query == "" {
		return "", nil, ErrUnsupportedSchema
	}
	return query, bindings, nil
}

// HasTable reports whether the table exists in the connection's database.
func (s *SchemaBuilder) HasTable(ctx context.Context, table string) (bool, error) {
	query, bindings, err := s.compile(func(g SchemaGrammar) (string, []any) {
		return g.CompileTableExists(s.database, table)
	})
	if err != nil {
		return false, err
	}

	result, err := s.exec.Execute(ctx, query, bindings...)
	if err != nil {
		return false, err
	}

	return result.Len() > 0, nil
}

// Tables lists table names of the connection's database.
func (s *SchemaBuilder) Tables(ctx context.Context) ([]string, error) {
	query, bindings, err := s.compile(func(g SchemaGrammar) (string, []any) {
		return g.CompileTables(s.database)
	})
	if err != nil {
		return nil, err
	}

	result, err := s.exec.Execute(ctx, query, bindings...)
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, result.Len())
	for _, row := range result.Rows() {
		if len(row) < 1 {
			continue
		}
		tables = append(tables, stringify(row[0]))
	}

	return tables, nil
}

// ColumnListing returns lower case column names of the table, read from the
// metadata of a query that selects no rows.
func (s *SchemaBuilder) ColumnListing(ctx context.Context, table string) ([]string, error) {
	query, bindings, err := s.compile(func(g SchemaGrammar) (string, []any) {
		return g.CompileColumnListing(table)
	})
	if err != nil {
		return nil, err
	}

	cursor, err := s.exec.Stream(ctx, query, bindings...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	return []string(cursor.Header()), nil
}

// HasColumn reports whether the table has the column. The check is case
// insensitive.
func (s *SchemaBuilder) HasColumn(ctx context.Context, table, column string) (bool, error) {
	return s.HasColumns(ctx, table, column)
}

// HasColumns reports whether the table has all of the columns.
func (s *SchemaBuilder) HasColumns(ctx context.Context, table string, columns ...string) (bool, error) {
	listing, err := s.ColumnListing(ctx, table)
	if err != nil {
		return false, err
	}

	for _, col := range columns {
		if !slices.Contains(listing, strings.ToLower(col)) {
			return false, nil
		}
	}
	return true, nil
}

func (s *SchemaBuilder) Drop(ctx context.Context, table string) error {
	return s.drop(ctx, table, false)
}

func (s *SchemaBuilder) DropIfExists(ctx context.Context, table string) error {
	return s.drop(ctx, table, true)
}

func (s *SchemaBuilder) drop(ctx context.Context, table string, ifExists bool) error {
	query, _, err := s.compile(func(g SchemaGrammar) (string, []any) {
		return g.CompileDrop(table, ifExists), nil
	})
	if err != nil {
		return err
	}

	_, err = s.exec.Execute(ctx, query)
	return err
}

func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
