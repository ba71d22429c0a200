package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adata/dbconn/core"
)

const pingConcurrency = 8

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check every configured connection",
		Long: "Connect to every configured connection concurrently and ping it. " +
			"Adapters that cannot ping are reported as connected.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Connections) == 0 {
				return errors.New("no connections configured")
			}

			// one slot per connection so that results keep config order
			results := make([]error, len(a.cfg.Connections))

			var g errgroup.Group
			g.SetLimit(pingConcurrency)
			for i, params := range a.cfg.Connections {
				g.Go(func() error {
					results[i] = a.ping(cmd.Context(), params)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			for i, params := range a.cfg.Connections {
				status := "ok"
				if err := results[i]; err != nil {
					status = err.Error()
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", params.Name, params.Type, status)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d connections failed", failed, len(results))
			}
			return nil
		},
	}
}

func (a *app) ping(ctx context.Context, params *core.ConnectionParams) error {
	conn, err := a.open(ctx, params)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = conn.Ping(ctx)
	if errors.Is(err, core.ErrPingNotSupported) {
		return nil
	}
	return err
}
