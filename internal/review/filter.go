package review

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Range is an inclusive [Min, Max] bound on a sub-score.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the bound.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Min, r.Max)
}

// Ranges maps sub-score fields to their bounds. Fields without an entry are
// unconstrained.
type Ranges map[Field]Range

// Match reports whether every constrained sub-score of rec is in range.
func (rs Ranges) Match(rec Record) bool {
	for f, r := range rs {
		v, ok := rec.Scores.Get(f)
		if !ok || !r.Contains(v) {
			return false
		}
	}
	return true
}

// Expressions renders the ranges as field=min:max strings in canonical
// field order.
func (rs Ranges) Expressions() []string {
	var out []string
	for _, f := range Fields {
		if r, ok := rs[f]; ok {
			out = append(out, fmt.Sprintf("%s=%s", f, r))
		}
	}
	return out
}

// Filter returns the records matching every range, in their original order.
// The input slice is not modified; an empty result is not an error.
func Filter(records []Record, ranges Ranges) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if ranges.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Select is Filter for display: it returns rows whose Index is the record's
// position in records.
func Select(records []Record, ranges Ranges) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if ranges.Match(rec) {
			rows = append(rows, NewRow(i, rec))
		}
	}
	return rows
}

// ParseRanges parses field=min:max expressions. A field may appear once.
func ParseRanges(exprs []string) (Ranges, error) {
	ranges := make(Ranges, len(exprs))
	for _, expr := range exprs {
		f, r, err := ParseRange(expr)
		if err != nil {
			return nil, err
		}
		if _, dup := ranges[f]; dup {
			return nil, &ValidationError{Field: string(f), Value: expr, Reason: "is constrained more than once"}
		}
		ranges[f] = r
	}
	return ranges, nil
}

// ParseRange parses one field=min:max expression. A single number ("quality=7")
// is shorthand for min=max.
func ParseRange(expr string) (Field, Range, error) {
	name, bounds, ok := strings.Cut(expr, "=")
	if !ok {
		return "", Range{}, &ValidationError{Value: expr, Reason: "range must look like field=min:max"}
	}
	f, err := ParseField(name)
	if err != nil {
		return "", Range{}, err
	}

	lo, hi, isRange := strings.Cut(bounds, ":")
	if !isRange {
		hi = lo
	}
	minV, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return "", Range{}, &ValidationError{Field: string(f), Value: bounds, Reason: "has a non-integer lower bound"}
	}
	maxV, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return "", Range{}, &ValidationError{Field: string(f), Value: bounds, Reason: "has a non-integer upper bound"}
	}
	if minV > maxV {
		return "", Range{}, &ValidationError{Field: string(f), Value: bounds, Reason: "has min greater than max"}
	}
	return f, Range{Min: minV, Max: maxV}, nil
}

// ParseField resolves a field from its JSON key, CLI flag or column header.
// Matching ignores case, accents, spaces and punctuation.
func ParseField(name string) (Field, error) {
	want := foldName(name)
	if want != "" {
		for _, f := range Fields {
			if want == foldName(string(f)) || want == foldName(f.Flag()) || want == foldName(f.Column()) {
				return f, nil
			}
		}
	}
	return "", &ValidationError{Field: "field", Value: name, Reason: "is not a known sub-score"}
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, folded)
}
