package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/async"
	"github.com/joseph-ayodele/visiting-cards/internal/cards"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		dir        string
		workers    int
		skipHidden bool
	)
	cmd := &cobra.Command{
		Use:   "batch --dir <path>",
		Short: "Scan and save every card image below a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			paths, stats, err := cards.CollectImages(dir, skipHidden)
			if err != nil {
				return err
			}
			a.Logger.Info("collected card images", "dir", dir, "scanned", stats.Scanned, "matched", stats.Matched)

			var (
				mu     sync.Mutex
				saved  int
				failed int
			)
			q := async.NewProcessorQueue(a.Cards, a.Logger,
				async.WithWorkers(workers),
				async.WithResultHandler(func(r async.Result) {
					mu.Lock()
					defer mu.Unlock()
					if r.Status == constants.ScanStatusSaved {
						saved++
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Status, r.Job.Path, r.Card.ID)
						return
					}
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%v\n", r.Status, r.Job.Path, r.Err)
				}),
			)
			for _, p := range paths {
				if err := q.Enqueue(ctx, async.NewJob(p)); err != nil {
					q.Shutdown(ctx)
					return err
				}
			}
			q.Shutdown(ctx)

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(cmd.ErrOrStderr(), "saved %d, failed %d of %d images\n", saved, failed, len(paths))
			if failed > 0 {
				return fmt.Errorf("%d card(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding card images")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent scans")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip dot files and directories")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
