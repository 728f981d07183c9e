package output

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/scorecard/internal/review"
)

// maxTotal is the highest possible total points.
const maxTotal = 10 * 10

// ChartMargin is the widest a chart line gets apart from its bar.
const ChartMargin = 4 + 1 + nameWidth + 1 + 1 + 3

// ChartWriter draws one horizontal bar per row, either of the total points
// or of a single sub-score.
type ChartWriter struct {
	// Field selects the sub-score to chart; empty charts the total.
	Field review.Field
	// Width is the bar length, in cells, of the maximum possible value.
	Width int
	Color bool
}

func (c *ChartWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	st := newStyles(w, c.Color)

	title, limit := "Total points", maxTotal
	if c.Field != "" {
		title, limit = c.Field.Column(), 10
	}
	ew.println(st.header.Render(title))
	if len(report.Filters) > 0 {
		ew.printf("Filters: %s\n", strings.Join(report.Filters, ", "))
	}

	if len(report.Rows) == 0 {
		ew.println("No products to chart.")
		return ew.err
	}

	width := c.Width
	if width < 1 {
		width = 40
	}
	labelWidth := 0
	for _, row := range report.Rows {
		labelWidth = max(labelWidth, len([]rune(truncate(row.Name, nameWidth))))
	}

	for _, row := range report.Rows {
		value, style := row.Total, st.total
		if c.Field != "" {
			cell, _ := row.Cell(c.Field)
			value, style = cell.Value, st.band(cell.Band)
		}
		n := barLength(value, limit, width)
		bar := style.Render(strings.Repeat("█", n)) + st.dim.Render(strings.Repeat("░", width-n))
		ew.printf("%s %s %s %s\n",
			pad(strconv.Itoa(row.Index), 4, true),
			pad(truncate(row.Name, nameWidth), labelWidth, false),
			bar,
			pad(strconv.Itoa(value), 3, true),
		)
	}
	return ew.err
}

// barLength scales value in [0, limit] to [0, width] cells.
func barLength(value, limit, width int) int {
	if value <= 0 {
		return 0
	}
	if value >= limit {
		return width
	}
	return int(math.Round(float64(value) * float64(width) / float64(limit)))
}
