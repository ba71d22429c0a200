package adapters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-tarantool/v2"

	"github.com/adata/dbconn/core"
)

func TestTarantoolResult(t *testing.T) {
	r := require.New(t)

	meta := []tarantool.ColumnMetaData{
		{FieldName: "ID", FieldType: "integer"},
		{FieldName: "NAME", FieldType: "string", FieldIsNullable: true, FieldCollation: "unicode_ci"},
	}
	data := []any{
		[]any{uint64(1), "a"},
		[]any{uint64(2), "b"},
	}

	stream := tarantoolResult(meta, data, tarantool.SQLInfo{})

	r.Equal([]*core.Column{
		{Name: "ID", Type: "integer"},
		{Name: "NAME", Type: "string", Nullable: true, Collation: "unicode_ci"},
	}, stream.Columns())

	var rows []core.Row
	for stream.HasNext() {
		row, err := stream.Next()
		r.NoError(err)
		rows = append(rows, row)
	}
	r.Equal([]core.Row{{uint64(1), "a"}, {uint64(2), "b"}}, rows)
}

func TestTarantoolResult_AffectedRows(t *testing.T) {
	r := require.New(t)

	stream := tarantoolResult(nil, nil, tarantool.SQLInfo{AffectedCount: 3})

	r.Equal(core.Header{"AFFECTED_ROWS"}, core.HeaderFromColumns(stream.Columns()))

	row, err := stream.Next()
	r.NoError(err)
	r.Equal(core.Row{uint64(3)}, row)
	r.False(stream.HasNext())
}

func TestClassifyTarantool(t *testing.T) {
	r := require.New(t)

	err := classifyTarantool(tarantool.ClientError{Code: tarantool.ErrConnectionClosed, Msg: "using closed connection"})
	var connErr *core.ConnectionError
	r.ErrorAs(err, &connErr)
	r.Equal("tarantool", connErr.Driver)

	boxErr := tarantool.Error{Code: 36, Msg: "Space 'T' does not exist"}
	err = classifyTarantool(boxErr)
	r.False(errors.As(err, &connErr))

	var coded tarantool.Error
	r.ErrorAs(err, &coded)
	r.EqualValues(36, coded.Code)

	r.NoError(classifyTarantool(nil))
}
