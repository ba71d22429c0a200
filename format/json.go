package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/adata/dbconn/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON writes one object per row, keyed by the normalized column names.
// Output is newline delimited so chunks can be appended.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) record(header core.Header, row core.Row) map[string]any {
	record := make(map[string]any, len(row))
	for i, val := range row {
		var h string
		if i < len(header) {
			h = header[i]
		} else {
			h = fmt.Sprintf("<unknown-field-%d>", i)
		}
		record[h] = val
	}
	return record
}

func (jf *JSON) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := json.NewEncoder(b)

	for _, row := range rows {
		if err := enc.Encode(jf.record(header, row)); err != nil {
			return nil, fmt.Errorf("enc.Encode: %w", err)
		}
	}

	return b.Bytes(), nil
}
