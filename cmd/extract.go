package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keenanwest/triage/internal/config"
	"github.com/keenanwest/triage/internal/extract"
	"github.com/keenanwest/triage/internal/report"
	"github.com/keenanwest/triage/internal/store"
	"github.com/keenanwest/triage/internal/telemetry"
)

var (
	flagFormat  string
	flagJSON    bool
	flagCommit  string
	flagPersist bool
	flagWidth   int
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract structured errors from a CI log file (or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read log file: %w", err)
			}
		} else {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		errs, raw, err := runExtraction(string(data))
		if err != nil {
			return err
		}

		if flagPersist {
			if err := persistRun(raw, errs); err != nil {
				return err
			}
		}

		return renderResults(cmd.OutOrStdout(), errs)
	},
}

// contextParserFor maps the --format flag to a Context Parser.
func contextParserFor(format string) (extract.ContextParser, error) {
	switch format {
	case "act":
		return extract.NewActContextParser(), nil
	case "actions":
		return extract.NewActionsContextParser(), nil
	case "plain", "":
		return extract.NewPlainContextParser(), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want act, actions, or plain)", format)
	}
}

// runExtraction runs the full pipeline over the log text and forwards
// sanitized unknown-pattern summaries to telemetry.
func runExtraction(raw string) ([]*extract.ExtractedError, string, error) {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, "", err
	}

	cp, err := contextParserFor(flagFormat)
	if err != nil {
		return nil, "", err
	}

	limits := cfg.Extract.Limits()
	extractor := extract.NewExtractor(extract.NewDefaultRegistry(limits), limits)
	errs := extractor.Extract(raw, cp)

	sanitizer := extract.NewSanitizer(cfg.Telemetry.GetMaxSamples(), cfg.Telemetry.GetMaxSampleLength())
	samples, total := sanitizer.Summarize(errs)
	telemetry.NewReporter(telemetry.LogSink{}).ReportUnknownPatterns(samples, total)

	return errs, raw, nil
}

func persistRun(raw string, errs []*extract.ExtractedError) error {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	st, err := store.OpenPath(cfg.Store.GetPath(cwd))
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.RecordRun(GetContext(), flagCommit, flagFormat, raw, errs)
	if err != nil {
		return fmt.Errorf("failed to persist run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "recorded run %s (%d errors)\n", runID, len(errs))
	return nil
}

func renderResults(w io.Writer, errs []*extract.ExtractedError) error {
	rep := report.New(errs)
	if flagJSON {
		data, err := rep.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprint(w, rep.Render(flagWidth))
	return nil
}

func init() {
	extractCmd.Flags().StringVar(&flagFormat, "format", "plain", "log format: act, actions, or plain")
	extractCmd.Flags().BoolVar(&flagJSON, "json", false, "emit records as JSON")
	extractCmd.Flags().StringVar(&flagCommit, "commit", "", "commit SHA to record with --persist")
	extractCmd.Flags().BoolVar(&flagPersist, "persist", false, "record results in the local database")
	extractCmd.Flags().IntVar(&flagWidth, "width", 100, "wrap width for the text report")
}
