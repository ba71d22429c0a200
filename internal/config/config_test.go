package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/internal/config"
)

const testConfig = `
default_connection: reports
log:
  level: debug
connections:
  - name: orders
    type: tarantool
    host: localhost
    port: 3301
    user: guest
    database: Orders
    options:
      timeout: 2s
  - id: rep-1
    name: reports
    type: postgres
    url: "postgres://{{ env \"PG_USER\" }}@localhost/reports"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Load(writeConfig(t, testConfig))
	r.NoError(err)

	r.Equal("reports", cfg.DefaultConnection)
	r.Equal("debug", cfg.Log.Level)
	r.Equal("console", cfg.Log.Format)
	r.Len(cfg.Connections, 2)

	orders := cfg.Connections[0]
	r.Equal(&core.ConnectionParams{
		ID:       "orders",
		Name:     "orders",
		Type:     "tarantool",
		Host:     "localhost",
		Port:     3301,
		User:     "guest",
		Database: "Orders",
		Options:  map[string]string{"timeout": "2s"},
	}, orders)

	// templates are expanded by the connection, not the loader
	r.Equal(core.ConnectionID("rep-1"), cfg.Connections[1].ID)
	r.Contains(cfg.Connections[1].URL, `{{ env "PG_USER" }}`)
}

func TestLoad_Env(t *testing.T) {
	r := require.New(t)

	t.Setenv("DBCONN_LOG_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, testConfig))
	r.NoError(err)
	r.Equal("warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	r := require.New(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	r.Error(err)

	_, err = config.Load(writeConfig(t, "connections: [\n"))
	r.Error(err)
}

func TestLoad_Search(t *testing.T) {
	r := require.New(t)

	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	// nothing to find
	cfg, err := config.Load("")
	r.NoError(err)
	r.Empty(cfg.Connections)
	r.Equal("info", cfg.Log.Level)

	r.NoError(os.WriteFile("config.yaml", []byte(testConfig), 0o600))
	cfg, err = config.Load("")
	r.NoError(err)
	r.Len(cfg.Connections, 2)
}

func TestConfig_Connection(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Load(writeConfig(t, testConfig))
	r.NoError(err)

	params, err := cfg.Connection("")
	r.NoError(err)
	r.Equal("reports", params.Name)

	params, err = cfg.Connection("orders")
	r.NoError(err)
	r.Equal("tarantool", params.Type)

	params, err = cfg.Connection("rep-1")
	r.NoError(err)
	r.Equal("reports", params.Name)

	_, err = cfg.Connection("nope")
	r.ErrorContains(err, `connection "nope" not found`)

	cfg.DefaultConnection = ""
	params, err = cfg.Connection("")
	r.NoError(err)
	r.Equal("orders", params.Name)

	_, err = (&config.Config{}).Connection("")
	r.ErrorIs(err, config.ErrNoConnections)
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
