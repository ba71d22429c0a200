package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/adata/dbconn/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

// Format writes the header only for the first chunk, so streamed chunks
// concatenate into one document.
func (cf *CSV) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	var data [][]string
	if opts == nil || opts.ChunkStart == 0 {
		data = append(data, header)
	}
	for _, row := range rows {
		csvRow := make([]string, len(row))
		for i, rec := range row {
			if rec == nil {
				continue
			}
			csvRow[i] = fmt.Sprint(rec)
		}
		data = append(data, csvRow)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
