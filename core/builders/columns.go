package builders

import (
	"database/sql"

	"github.com/adata/dbconn/core"
)

// ColumnsFromTypes converts database/sql column types to column metadata.
// Names are kept exactly as the driver reported them.
func ColumnsFromTypes(types []*sql.ColumnType) []*core.Column {
	columns := make([]*core.Column, len(types))
	for i, typ := range types {
		if typ == nil {
			continue
		}

		nullable, _ := typ.Nullable()
		columns[i] = &core.Column{
			Name:     typ.Name(),
			Type:     typ.DatabaseTypeName(),
			Nullable: nullable,
		}
	}
	return columns
}
