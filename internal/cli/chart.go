package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/scorecard/internal/output"
	"github.com/dshills/scorecard/internal/review"
)

var (
	flagChartField string
	flagChartWidth int
)

var chartCmd = &cobra.Command{
	Use:     "chart",
	Short:   "Draw a bar chart of total points or one sub-score",
	Example: "  scorecard chart\n  scorecard chart --field quality --range trend=8:10",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var field review.Field
		if !strings.EqualFold(flagChartField, "total") {
			f, err := review.ParseField(flagChartField)
			if err != nil {
				return err
			}
			field = f
		}
		ranges, err := review.ParseRanges(flagRanges)
		if err != nil {
			return err
		}

		overrides := map[string]string{}
		if flagChartWidth > 0 {
			overrides["chartWidth"] = strconv.Itoa(flagChartWidth)
		}
		e, err := setup(overrides)
		if err != nil {
			return err
		}

		report, err := loadReport(e, ranges)
		if err != nil {
			fail(err)
			return nil
		}
		width := e.cfg.ChartWidth
		if flagOut == "" {
			width = fitTerminal(width)
		}
		cw := &output.ChartWriter{Field: field, Width: width, Color: e.cfg.Color}
		if err := emit(cw, report, flagOut); err != nil {
			fail(err)
		}
		return nil
	},
}

// fitTerminal shrinks width so chart lines do not wrap when stdout is a
// terminal narrower than the chart.
func fitTerminal(width int) int {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return width
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return width
	}
	return max(1, min(width, cols-output.ChartMargin))
}

func init() {
	addViewFlags(chartCmd)
	chartCmd.Flags().StringVar(&flagChartField, "field", "total", "What to chart: total or a sub-score name")
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 0, "Bar length of the maximum value (default from config: 40)")
}
