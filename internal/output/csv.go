package output

import (
	"io"

	"github.com/dshills/scorecard/internal/review"
	"github.com/dshills/scorecard/internal/store"
)

// CSVWriter outputs the report rows in the data file layout, so a filtered
// export can be used as a data file itself.
type CSVWriter struct{}

func (c *CSVWriter) Write(w io.Writer, report *review.Report) error {
	records := make([]review.Record, len(report.Rows))
	for i, row := range report.Rows {
		records[i] = row.Record()
	}
	return store.Encode(w, records)
}
