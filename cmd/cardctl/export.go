package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active cards to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			xlsx, err := a.Export.ExportCardsXLSX(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, xlsx, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(xlsx))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", export.FileName, "output file")
	return cmd
}
