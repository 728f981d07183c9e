package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/dshills/scorecard/internal/review"
)

const htmlStyle = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse}
th,td{border:1px solid #d0d7de;padding:4px 8px;text-align:center}
.band{display:inline-block;min-width:2em;color:#fff;border-radius:3px}
.band-low{background:#CF222E}
.band-mid{background:#D29922}
.band-high{background:#2DA44E}`

// HTMLWriter outputs a standalone HTML page. The page body is the markdown
// report rendered through gomarkdown, with band cells as coloured spans.
type HTMLWriter struct{}

func (h *HTMLWriter) Write(w io.Writer, report *review.Report) error {
	var md bytes.Buffer
	if err := writeMarkdown(&md, report, htmlCell, htmlLegend); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	// Inline HTML is kept for the band spans; every user-supplied string is
	// escaped before it reaches the markdown, and Safelink drops non-web links.
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.Safelink})
	body := markdown.ToHTML(md.Bytes(), p, renderer)

	ew := &errWriter{w: w}
	ew.printf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	ew.printf("<title>Product Scorecard</title>\n")
	ew.printf("<style>\n%s\n</style>\n</head>\n<body>\n", htmlStyle)
	if ew.err == nil {
		_, ew.err = w.Write(body)
	}
	ew.printf("</body>\n</html>\n")
	return ew.err
}

func htmlCell(c review.Cell) string {
	return fmt.Sprintf(`<span class="band band-%s">%d</span>`, c.Band, c.Value)
}

func htmlLegend(b review.Band) string {
	return fmt.Sprintf(`<span class="band band-%s">%s</span>`, b, b)
}
