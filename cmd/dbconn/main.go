// Command dbconn runs queries against the configured connections.
//
// Connections are read from ~/.dbconn/config.yaml, ./config.yaml or the file
// given with --config:
//
//	default_connection: orders
//	log:
//	  level: debug
//	connections:
//	  - name: orders
//	    type: tarantool
//	    host: localhost
//	    port: 3301
//	    user: '{{ env "TT_USER" }}'
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/internal/config"
	"github.com/adata/dbconn/internal/logging"
)

// app is the state shared by the subcommands.
type app struct {
	configFile string
	logLevel   string
	connName   string

	cfg    *config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "dbconn",
		Short:         "Query databases through one connection interface",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to config file")
	flags.StringVar(&a.logLevel, "log-level", "", "override log level from config")
	flags.StringVarP(&a.connName, "conn", "c", "", "connection name or id (default from config)")

	rootCmd.AddCommand(
		newQueryCmd(a),
		newTablesCmd(a),
		newColumnsCmd(a),
		newPingCmd(a),
		newDriversCmd(),
	)

	return rootCmd
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(
		logging.WithOutput(stderr),
		logging.WithLevel(cfg.Log.Level),
		logging.WithFormat(cfg.Log.Format),
		logging.WithFile(cfg.Log.File),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// connect opens the connection selected by --conn.
func (a *app) connect(ctx context.Context) (*core.Connection, error) {
	params, err := a.cfg.Connection(a.connName)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, params)
}

func (a *app) open(ctx context.Context, params *core.ConnectionParams) (*core.Connection, error) {
	return adapters.NewConnection(ctx, params,
		core.WithLogger(a.logger.With("connection", params.Name)),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
