package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/scorecard/internal/review"
)

const utf8BOM = "\ufeff"

// Encode writes the header row followed by one row per record.
func Encode(w io.Writer, records []review.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(review.Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(encodeRow(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeRow(rec review.Record) []string {
	row := make([]string, 0, len(review.Fields)+4)
	row = append(row, rec.Link, rec.Name, rec.DateFound.String())
	for _, v := range rec.Scores.Values() {
		row = append(row, strconv.Itoa(v))
	}
	return append(row, strconv.Itoa(rec.TotalPoints))
}

// Decode reads a table written by Encode. An empty input decodes to an empty
// slice. Every row is checked: sub-scores must be in range and the stored
// total must equal their sum.
func Decode(r io.Reader) ([]review.Record, error) {
	columns := review.Columns()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []review.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	records := []review.Record{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRow(row []string) (review.Record, error) {
	var rec review.Record
	rec.Link = row[0]
	rec.Name = row[1]

	date, err := review.ParseDate(strings.TrimSpace(row[2]))
	if err != nil {
		return rec, err
	}
	rec.DateFound = date

	values := make([]int, len(review.Fields))
	for i, f := range review.Fields {
		v, err := parseInt(row[3+i])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", f.Column(), err)
		}
		values[i] = v
	}
	if rec.Scores, err = review.SubScoresFromValues(values); err != nil {
		return rec, err
	}

	if rec.TotalPoints, err = parseInt(row[len(row)-1]); err != nil {
		return rec, fmt.Errorf("%s: %w", review.ColumnTotal, err)
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// parseInt accepts base-10 integers and integral floats such as "7.0".
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
