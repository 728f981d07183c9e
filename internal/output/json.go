package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/scorecard/internal/review"
)

// JSONWriter outputs the full report, rows and summary included, as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
