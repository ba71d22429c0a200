package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adata/dbconn/internal/logging"
)

func TestLogger_JSON(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l, err := logging.New(logging.WithOutput(&buf), logging.WithFormat(logging.FormatJSON), logging.WithLevel("debug"))
	r.NoError(err)

	l.With("connection", "orders").Debugf("connected to %s", "tarantool")

	var line map[string]any
	r.NoError(json.Unmarshal(buf.Bytes(), &line))
	r.Equal("debug", line["level"])
	r.Equal("connected to tarantool", line["message"])
	r.Equal("orders", line["connection"])
	r.Contains(line, "time")
}

func TestLogger_Level(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l, err := logging.New(logging.WithOutput(&buf), logging.WithFormat(logging.FormatJSON), logging.WithLevel("WARN"))
	r.NoError(err)

	l.Debug("hidden")
	l.Info("hidden")
	r.Empty(buf.String())

	l.Warn("shown")
	r.Contains(buf.String(), "shown")
}

func TestLogger_Console(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l, err := logging.New(logging.WithOutput(&buf))
	r.NoError(err)

	l.Errorf("query failed: %d", 42)
	r.Contains(buf.String(), "query failed: 42")
}

func TestLogger_File(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "dbconn.log")
	l, err := logging.New(logging.WithFile(path), logging.WithFormat(logging.FormatJSON))
	r.NoError(err)

	l.Info("to file")
	l.Close()

	data, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(data), "to file")
}

func TestLogger_Invalid(t *testing.T) {
	r := require.New(t)

	_, err := logging.New(logging.WithLevel("loud"))
	r.Error(err)

	_, err = logging.New(logging.WithFormat("xml"))
	r.ErrorContains(err, `unknown log format "xml"`)
}

func TestNop(t *testing.T) {
	l := logging.Nop()
	l.Error("discarded")
	l.Close()
}
