package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keenanwest/triage/internal/logging"
	"github.com/keenanwest/triage/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-extract whenever the log file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		run := func() {
			data, err := os.ReadFile(path)
			if err != nil {
				logging.Warn("failed to read log file", "path", path, "error", err)
				return
			}
			errs, _, err := runExtraction(string(data))
			if err != nil {
				logging.Warn("extraction failed", "error", err)
				return
			}
			if err := renderResults(cmd.OutOrStdout(), errs); err != nil {
				logging.Warn("render failed", "error", err)
			}
		}

		// Initial pass before waiting for changes.
		run()

		fmt.Fprintf(os.Stderr, "watching %s\n", path)
		err := watch.New(path, run).Run(GetContext())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().StringVar(&flagFormat, "format", "plain", "log format: act, actions, or plain")
	watchCmd.Flags().BoolVar(&flagJSON, "json", false, "emit records as JSON")
	watchCmd.Flags().IntVar(&flagWidth, "width", 100, "wrap width for the text report")
}
