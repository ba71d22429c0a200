package core

import (
	"strings"
	"unicode/utf8"
)

// NormalizeColumns returns a copy of columns with every name folded to lower
// case, nested fields included. Input descriptors are left untouched and nil
// descriptors are passed through as nil.
func NormalizeColumns(columns []*Column) []*Column {
	if columns == nil {
		return nil
	}

	out := make([]*Column, len(columns))
	for i, col := range columns {
		out[i] = normalizeColumn(col)
	}
	return out
}

func normalizeColumn(col *Column) *Column {
	if col == nil {
		return nil
	}

	c := *col
	c.Name = foldName(col.Name)
	c.Fields = NormalizeColumns(col.Fields)

	return &c
}

// foldName lower cases the name. Names that are not valid UTF-8 only get
// their ASCII letters folded, other bytes are kept as they are.
func foldName(name string) string {
	if utf8.ValidString(name) {
		return strings.ToLower(name)
	}

	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Normalize converts a raw result to a normalized one.
// Rows are shared with the raw result, not copied.
func Normalize(raw *RawResult) *Result {
	if raw == nil {
		return newResult(nil, nil)
	}

	return newResult(NormalizeColumns(raw.Columns), raw.Rows)
}
