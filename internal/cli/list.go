package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/scorecard/internal/output"
	"github.com/dshills/scorecard/internal/review"
)

// Shared view flags
var (
	flagRanges []string
	flagFormat string
	flagOut    string
)

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&flagRanges, "range", nil, "Keep records with field in [min,max], as field=min:max (repeatable; all must match)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty data file with the column header",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(nil)
		if err != nil {
			return err
		}
		created, err := e.store.Init()
		if err != nil {
			fail(err)
			return nil
		}
		if created {
			fmt.Fprintf(stdout, "Created %s\n", e.store.Path())
		} else {
			fmt.Fprintf(stdout, "%s already exists\n", e.store.Path())
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the scorecard table",
	Long: "Show every record with its sub-scores classified into bands " +
		"(1-3 low, 4-7 mid, 8-10 high). Indexes shown are the positions delete takes.",
	Example: "  scorecard list\n  scorecard list --range quality=8:10 --range price=1:5 --format markdown",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ranges, err := review.ParseRanges(flagRanges)
		if err != nil {
			return err
		}
		e, err := setup(map[string]string{"format": flagFormat})
		if err != nil {
			return err
		}

		report, err := loadReport(e, ranges)
		if err != nil {
			fail(err)
			return nil
		}
		writer, err := output.GetWriter(e.cfg.Format, e.cfg.Color)
		if err != nil {
			return err
		}
		if err := emit(writer, report, flagOut); err != nil {
			fail(err)
		}
		return nil
	},
}

func loadReport(e *env, ranges review.Ranges) (*review.Report, error) {
	records, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	report := review.BuildReport(e.store.Path(), records, ranges)
	report.Version = version
	return report, nil
}

// emit writes to outPath, or to stdout when it is empty.
func emit(writer output.Writer, report *review.Report, outPath string) error {
	if outPath == "" {
		return writer.Write(stdout, report)
	}
	return output.Emit(writer, report, outPath)
}

func init() {
	addViewFlags(listCmd)
	listCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, csv, html)")
}
