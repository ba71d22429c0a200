package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/adata/dbconn/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders an aligned table with a leading row index column.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	start := 0
	if opts != nil {
		start = opts.ChunkStart
	}

	tableHeaders := table.Row{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}

	tableRows := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		indexed := make(table.Row, 0, len(row)+1)
		indexed = append(indexed, start+i+1)
		for _, val := range row {
			if val == nil {
				val = "NULL"
			}
			indexed = append(indexed, val)
		}
		tableRows = append(tableRows, indexed)
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	return []byte(t.Render() + "\n"), nil
}
