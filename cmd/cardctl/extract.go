package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/internal/app"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract contact fields from OCR text (stdin when no file or -)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if len(args) == 0 || args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}

			engine, err := app.NewEngine(opts.config(), opts.logger())
			if err != nil {
				return err
			}
			fields, err := engine.ExtractValue(b)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fields)
		},
	}
}
