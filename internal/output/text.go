package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/scorecard/internal/review"
)

const (
	nameWidth = 24
	ruleWidth = 96
)

var (
	lowColor    = lipgloss.Color("#CF222E")
	midColor    = lipgloss.Color("#D29922")
	highColor   = lipgloss.Color("#2DA44E")
	accentColor = lipgloss.Color("#0969DA")
	dimColor    = lipgloss.Color("#6E7681")
	cellText    = lipgloss.Color("#FFFFFF")
)

// styles holds the styles of one render. They are bound to the destination
// writer so colour is only emitted when it is a terminal.
type styles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	total  lipgloss.Style
	bands  map[review.Band]lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	s := styles{
		header: r.NewStyle().Bold(true),
		dim:    r.NewStyle(),
		total:  r.NewStyle().Bold(true),
		bands:  map[review.Band]lipgloss.Style{},
	}
	for _, b := range review.Bands {
		s.bands[b] = r.NewStyle()
	}
	if !color {
		return s
	}
	s.header = s.header.Foreground(accentColor)
	s.dim = s.dim.Foreground(dimColor)
	s.bands[review.BandLow] = s.bands[review.BandLow].Background(lowColor).Foreground(cellText)
	s.bands[review.BandMid] = s.bands[review.BandMid].Background(midColor).Foreground(cellText)
	s.bands[review.BandHigh] = s.bands[review.BandHigh].Background(highColor).Foreground(cellText)
	return s
}

func (s styles) band(b review.Band) lipgloss.Style {
	if st, ok := s.bands[b]; ok {
		return st
	}
	return s.dim
}

// TextWriter outputs the scorecard as an aligned terminal table with every
// sub-score cell coloured by its band.
type TextWriter struct {
	Color bool
}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	st := newStyles(w, t.Color)

	ew.printf("%s\n", st.header.Render("Product Scorecard"))
	if report.Source != "" {
		ew.printf("Source: %s\n", report.Source)
	}
	if len(report.Filters) > 0 {
		ew.printf("Filters: %s\n", strings.Join(report.Filters, ", "))
	}
	ew.println(strings.Repeat("─", ruleWidth))

	if len(report.Rows) == 0 {
		if len(report.Filters) > 0 {
			ew.println("No products match the filters.")
		} else {
			ew.println("No products recorded yet.")
		}
		return ew.err
	}

	widths := cellWidths()
	header := []string{
		pad("#", 4, true),
		pad("Product", nameWidth, false),
		pad("Date found", 10, false),
	}
	for i, f := range review.Fields {
		header = append(header, pad(f.Short(), widths[i], true))
	}
	header = append(header, pad("Total", 5, true))
	ew.println(st.header.Render(strings.Join(header, " ")))

	for _, row := range report.Rows {
		line := []string{
			pad(strconv.Itoa(row.Index), 4, true),
			pad(truncate(row.Name, nameWidth), nameWidth, false),
			pad(row.DateFound.String(), 10, false),
		}
		for i, c := range row.Cells {
			line = append(line, st.band(c.Band).Render(pad(strconv.Itoa(c.Value), widths[i], true)))
		}
		line = append(line, st.total.Render(pad(strconv.Itoa(row.Total), 5, true)))
		ew.println(strings.Join(line, " "))
	}

	ew.println(strings.Repeat("─", ruleWidth))
	sum := report.Summary
	ew.printf("Products: %d | Total points: min %d, max %d, mean %.1f\n",
		sum.Count, sum.TotalMin, sum.TotalMax, sum.TotalMean)
	ew.printf("Bands: %s 1-3  %s 4-7  %s 8-10\n",
		st.band(review.BandLow).Render(" low "),
		st.band(review.BandMid).Render(" mid "),
		st.band(review.BandHigh).Render(" high "),
	)
	return ew.err
}

func cellWidths() []int {
	widths := make([]int, len(review.Fields))
	for i, f := range review.Fields {
		widths[i] = max(len(f.Short()), 2)
	}
	return widths
}

func pad(s string, width int, right bool) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if right {
		return fill + s
	}
	return s + fill
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
