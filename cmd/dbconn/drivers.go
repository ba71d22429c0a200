package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adata/dbconn/adapters"
)

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List registered adapters and their type aliases",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			mux := new(adapters.Mux)
			aliases := mux.Aliases()
			for _, name := range mux.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, strings.Join(aliases[name], ", "))
			}
			return nil
		},
	}
}
