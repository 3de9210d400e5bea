package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "OCR a card image and print the extracted contact fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			res, err := a.Cards.Scan(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			if save {
				card, err := a.Cards.Save(ctx, cards.FieldsToCard(res.Fields))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved card %s\n", card.ID)
			}
			return printJSON(cmd.OutOrStdout(), res.Fields)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store the extracted card")
	return cmd
}
