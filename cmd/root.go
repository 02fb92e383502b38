package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/keenanwest/triage/internal/logging"
	triagesignal "github.com/keenanwest/triage/internal/signal"
)

var (
	// rootCtx holds the signal-cancellable context for the application
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Extract structured errors from CI run output",
	Long: `triage parses the combined stdout/stderr of a CI run and produces a
structured, deduplicated list of diagnostics for reporting and for
automated-fix tooling.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		rootCtx, rootCancel = triagesignal.WithSignalCancel(context.Background())
		cwd, err := os.Getwd()
		if err != nil {
			cwd = ""
		}
		logging.Init(cwd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rootCancel != nil {
			rootCancel()
		}
		logging.Close()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// GetContext returns the root context that is cancelled on SIGINT/SIGTERM.
// This should be used by all subcommands instead of context.Background().
func GetContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(watchCmd)
}
