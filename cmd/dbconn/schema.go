package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables of the connection's database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			tables, err := conn.Schema().Tables(cmd.Context())
			if err != nil {
				return err
			}
			for _, table := range tables {
				fmt.Fprintln(cmd.OutOrStdout(), table)
			}
			return nil
		},
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns TABLE",
		Short: "List the lower case column names of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			columns, err := conn.Schema().ColumnListing(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, column := range columns {
				fmt.Fprintln(cmd.OutOrStdout(), column)
			}
			return nil
		},
	}
}
