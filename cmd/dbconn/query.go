package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/format"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		stream     bool
		formatName string
		chunkSize  int
	)

	cmd := &cobra.Command{
		Use:   "query SQL [ARGS...]",
		Short: "Run a query and print the normalized result",
		Long: "Run a query on the selected connection. Positional arguments after the query " +
			"are passed as bindings. With --stream, rows are printed in chunks as they arrive.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := format.Get(formatName)
			if err != nil {
				return err
			}
			if chunkSize < 1 {
				return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
			}

			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			bindings := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				bindings = append(bindings, arg)
			}

			if stream {
				cursor, err := conn.Stream(cmd.Context(), args[0], bindings...)
				if err != nil {
					return err
				}
				return writeCursor(cmd.OutOrStdout(), cursor, formatter, chunkSize)
			}

			result, err := conn.Execute(cmd.Context(), args[0], bindings...)
			if err != nil {
				return err
			}
			out, err := result.Format(formatter, 0, -1)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "print rows as they arrive")
	cmd.Flags().StringVarP(&formatName, "format", "f", "table", fmt.Sprintf("output format %v", format.Names()))
	cmd.Flags().IntVar(&chunkSize, "chunk", 100, "rows per printed chunk when streaming")

	return cmd
}

// writeCursor drains the cursor, formatting every chunkSize rows.
func writeCursor(w io.Writer, cursor *core.Cursor, formatter core.Formatter, chunkSize int) error {
	defer cursor.Close()

	header := cursor.Header()
	chunk := make([]core.Row, 0, chunkSize)
	written := 0

	flush := func() error {
		if len(chunk) == 0 && written > 0 {
			return nil
		}
		out, err := formatter.Format(header, chunk, &core.FormatterOptions{ChunkStart: written})
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		written += len(chunk)
		chunk = chunk[:0]
		return nil
	}

	for row, err := range cursor.Rows() {
		if err != nil {
			return err
		}
		chunk = append(chunk, row)
		if len(chunk) == chunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
