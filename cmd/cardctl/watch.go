package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/async"
	"github.com/joseph-ayodele/visiting-cards/internal/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		dirs     []string
		workers  int
		existing bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch --dir <path>",
		Short: "Scan and save card images as they appear in drop folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			events, errs, err := watch.Start(ctx, watch.Config{
				Roots:       dirs,
				InitialScan: existing,
				Debounce:    debounce,
				SkipHidden:  true,
			}, a.Logger)
			if err != nil {
				return err
			}

			q := async.NewProcessorQueue(a.Cards, a.Logger,
				async.WithWorkers(workers),
				async.WithResultHandler(func(r async.Result) {
					if r.Status == constants.ScanStatusSaved {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Status, r.Job.Path, r.Card.ID)
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%v\n", r.Status, r.Job.Path, r.Err)
				}),
			)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				defer cancel()
				q.Shutdown(shutdownCtx)
			}()

			fmt.Fprintf(cmd.ErrOrStderr(), "watching %v, press Ctrl+C to stop\n", dirs)
			for {
				select {
				case p, ok := <-events:
					if !ok {
						return nil
					}
					if err := q.Enqueue(ctx, async.NewJob(p)); err != nil {
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					a.Logger.Warn("watch error", "error", err)
				}
			}
		},
	}
	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "directory to watch (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 2, "concurrent scans")
	cmd.Flags().BoolVar(&existing, "existing", false, "also scan images already present")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "wait for writes to settle before scanning")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
