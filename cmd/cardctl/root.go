package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/visiting-cards/internal/app"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

type rootOptions struct {
	envFile string
	dbURL   string
	rules   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cardctl",
		Short:         "Extract and manage visiting card contacts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.dbURL, "db", "", "database DSN (overrides DB_URL)")
	cmd.PersistentFlags().StringVar(&opts.rules, "rules", "", "YAML rules file extending the built-in tables (overrides RULES_FILE)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		newExtractCmd(opts),
		newScanCmd(opts),
		newBatchCmd(opts),
		newExportCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (o *rootOptions) config() *common.Config {
	common.LoadEnvFiles(o.envFile)
	cfg := common.LoadConfig()
	if o.dbURL != "" {
		cfg.Database.DSN = o.dbURL
	}
	if o.rules != "" {
		cfg.Rules.File = o.rules
	}
	return cfg
}

func (o *rootOptions) openApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, o.config(), o.logger())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
