package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/scorecard/internal/review"
)

// MarkdownWriter outputs a GitHub-flavoured markdown table with an emoji
// marker for each band.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	return writeMarkdown(w, report, mdEmojiCell, mdEmojiLegend)
}

var bandRanges = map[review.Band]string{
	review.BandLow:  "1-3",
	review.BandMid:  "4-7",
	review.BandHigh: "8-10",
}

// writeMarkdown renders the report, formatting each sub-score with cell and
// each legend entry with legend.
func writeMarkdown(w io.Writer, report *review.Report, cell func(review.Cell) string, legend func(review.Band) string) error {
	ew := &errWriter{w: w}

	ew.printf("## Product Scorecard\n\n")
	if report.Source != "" {
		ew.printf("Source: `%s`\n\n", report.Source)
	}
	if len(report.Filters) > 0 {
		ew.printf("Filters: `%s`\n\n", strings.Join(report.Filters, "`, `"))
	}

	if len(report.Rows) == 0 {
		if len(report.Filters) > 0 {
			ew.println("No products match the filters.")
		} else {
			ew.println("No products recorded yet.")
		}
		return ew.err
	}

	cols := []string{"#", "Product", "Date found"}
	for _, f := range review.Fields {
		cols = append(cols, f.Column())
	}
	cols = append(cols, review.ColumnTotal)
	ew.printf("| %s |\n", strings.Join(cols, " | "))
	ew.printf("|%s\n", strings.Repeat("---|", len(cols)))

	for _, row := range report.Rows {
		line := []string{
			fmt.Sprint(row.Index),
			mdProduct(row),
			row.DateFound.String(),
		}
		for _, c := range row.Cells {
			line = append(line, cell(c))
		}
		line = append(line, fmt.Sprintf("**%d**", row.Total))
		ew.printf("| %s |\n", strings.Join(line, " | "))
	}

	sum := report.Summary
	ew.printf("\n**Products:** %d | **Total points:** min %d, max %d, mean %.1f\n\n",
		sum.Count, sum.TotalMin, sum.TotalMax, sum.TotalMean)

	ew.printf("| Band | Range |\n|---|---|\n")
	for _, b := range review.Bands {
		ew.printf("| %s | %s |\n", legend(b), bandRanges[b])
	}
	return ew.err
}

// mdEmojiCell renders a cell as "<marker> value".
func mdEmojiCell(c review.Cell) string {
	return mdBandIcon(c.Band) + " " + fmt.Sprint(c.Value)
}

func mdEmojiLegend(b review.Band) string {
	return mdBandIcon(b) + " " + string(b)
}

func mdBandIcon(b review.Band) string {
	switch b {
	case review.BandLow:
		return ":red_circle:"
	case review.BandMid:
		return ":yellow_circle:"
	case review.BandHigh:
		return ":green_circle:"
	default:
		return ":white_circle:"
	}
}

func mdProduct(row review.Row) string {
	name := mdEscape(row.Name)
	if name == "" {
		name = "(unnamed)"
	}
	if row.Link == "" {
		return name
	}
	return fmt.Sprintf("[%s](%s)", name, mdLinkEscaper.Replace(row.Link))
}

// mdLinkEscaper percent-encodes the characters that could end a link
// destination or a table cell, or open raw HTML.
var mdLinkEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
	`"`, "%22",
	"|", "%7C",
	`\`, "%5C",
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

func mdEscape(s string) string {
	return mdEscaper.Replace(s)
}
