package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adata/dbconn/core"
)

func TestNormalizeColumns(t *testing.T) {
	type testCase struct {
		name     string
		input    []*core.Column
		expected []*core.Column
	}

	testCases := []testCase{
		{
			name:     "upper case names",
			input:    []*core.Column{{Name: "ID", Type: "unsigned"}, {Name: "NAME", Type: "string"}},
			expected: []*core.Column{{Name: "id", Type: "unsigned"}, {Name: "name", Type: "string"}},
		},
		{
			name:     "mixed case and other attributes kept",
			input:    []*core.Column{{Name: "CreatedAt", Type: "datetime", Nullable: true, Collation: "unicode_ci"}},
			expected: []*core.Column{{Name: "createdat", Type: "datetime", Nullable: true, Collation: "unicode_ci"}},
		},
		{
			name: "nested fields",
			input: []*core.Column{{
				Name: "Address",
				Type: "map",
				Fields: []*core.Column{
					{Name: "Street"},
					{Name: "GEO", Fields: []*core.Column{{Name: "LAT"}, {Name: "Lon"}}},
				},
			}},
			expected: []*core.Column{{
				Name: "address",
				Type: "map",
				Fields: []*core.Column{
					{Name: "street"},
					{Name: "geo", Fields: []*core.Column{{Name: "lat"}, {Name: "lon"}}},
				},
			}},
		},
		{
			name:     "non ascii",
			input:    []*core.Column{{Name: "ÄÖÜ"}},
			expected: []*core.Column{{Name: "äöü"}},
		},
		{
			name:     "invalid utf-8 keeps non ascii bytes",
			input:    []*core.Column{{Name: "N\xc4ME"}},
			expected: []*core.Column{{Name: "n\xc4me"}},
		},
		{
			name:     "malformed descriptors pass through",
			input:    []*core.Column{{Name: "A"}, nil, {Name: ""}},
			expected: []*core.Column{{Name: "a"}, nil, {Name: ""}},
		},
		{
			name:     "empty",
			input:    []*core.Column{},
			expected: []*core.Column{},
		},
		{
			name:     "nil",
			input:    nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			actual := core.NormalizeColumns(tc.input)
			r.Equal(tc.expected, actual)

			// folding twice changes nothing
			r.Equal(actual, core.NormalizeColumns(actual))
		})
	}
}

func TestNormalizeColumns_DoesNotMutateInput(t *testing.T) {
	r := require.New(t)

	nested := &core.Column{Name: "INNER"}
	input := []*core.Column{{Name: "OUTER", Fields: []*core.Column{nested}}}

	out := core.NormalizeColumns(input)

	r.Equal("OUTER", input[0].Name)
	r.Equal("INNER", nested.Name)
	r.Equal("outer", out[0].Name)
	r.Equal("inner", out[0].Fields[0].Name)
	r.NotSame(input[0], out[0])
}

func TestNormalize(t *testing.T) {
	r := require.New(t)

	rows := []core.Row{{1, "Widget"}, {2, nil}}
	raw := &core.RawResult{
		Columns: []*core.Column{{Name: "ID"}, {Name: "NAME"}},
		Rows:    rows,
	}

	result := core.Normalize(raw)

	r.Equal(core.Header{"id", "name"}, result.Header())
	r.Equal(rows, result.Rows())
	r.Equal(2, result.Len())
	r.Equal([]map[string]any{
		{"id": 1, "name": "Widget"},
		{"id": 2, "name": nil},
	}, result.Records())

	// row count and values are preserved, the raw result stays as it was
	r.Equal("ID", raw.Columns[0].Name)
}

func TestResult_RecordsDuplicateNames(t *testing.T) {
	r := require.New(t)

	result := core.Normalize(&core.RawResult{
		Columns: []*core.Column{{Name: "ID"}, {Name: "id"}, {Name: ""}},
		Rows:    []core.Row{{1, 2, 3}, {4, 5, 6}},
	})

	r.Equal(core.Header{"id", "id", ""}, result.Header())
	r.Equal([]map[string]any{
		{"id": 1, "<duplicate-field-1>": 2, "<unknown-field-2>": 3},
		{"id": 4, "<duplicate-field-1>": 5, "<unknown-field-2>": 6},
	}, result.Records())
}

func TestNormalize_Empty(t *testing.T) {
	r := require.New(t)

	result := core.Normalize(&core.RawResult{Columns: []*core.Column{{Name: "X"}}})
	r.True(result.IsEmpty())
	r.Equal(core.Header{"x"}, result.Header())
	r.NotNil(result.Rows())

	result = core.Normalize(nil)
	r.True(result.IsEmpty())
	r.Empty(result.Header())
}

func TestResult_Range(t *testing.T) {
	r := require.New(t)

	rows := []core.Row{{0}, {1}, {2}, {3}}
	result := core.Normalize(&core.RawResult{Columns: []*core.Column{{Name: "N"}}, Rows: rows})

	got, err := result.Range(1, 3)
	r.NoError(err)
	r.Equal(rows[1:3], got)

	got, err = result.Range(0, -1)
	r.NoError(err)
	r.Equal(rows, got)

	got, err = result.Range(-3, -1)
	r.NoError(err)
	r.Equal(rows[2:], got)

	got, err = result.Range(2, 100)
	r.NoError(err)
	r.Equal(rows[2:], got)

	_, err = result.Range(3, 1)
	r.Error(err)

	_, err = result.Range(-1, 2)
	r.Error(err)
}
