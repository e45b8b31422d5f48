// Package main implements the hgpart CLI: a root command that builds a
// leveled logger in PersistentPreRun and dispatches to the gen/file/score
// subcommands.
package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gilchrisn/hgpart/internal/telemetry"
)

var (
	version = "dev"
	verbose bool
)

type ctxLoggerKey struct{}

func withLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, log)
}

func loggerFromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(ctxLoggerKey{}).(zerolog.Logger); ok {
		return log
	}
	return telemetry.Nop()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hgpart",
		Short:        "Balanced hypergraph partitioner minimizing the (k-1) connectivity metric",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := telemetry.New("hgpart", level, cmd.ErrOrStderr())
			cmd.SetContext(withLogger(cmd.Context(), log))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenCmd())
	root.AddCommand(newFileCmd())
	root.AddCommand(newScoreCmd())

	return root
}

func run() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
