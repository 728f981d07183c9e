package review

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so errors line up with Field values.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every sub-score lies in [1,10]. The first offending
// field, in canonical order, is reported as a *ValidationError.
func (s SubScores) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Field:  fe.Field(),
		Value:  fe.Value(),
		Reason: fmt.Sprintf("must be %s %s (allowed range 1-10)", comparison(fe.Tag()), fe.Param()),
	}
}

func comparison(tag string) string {
	switch tag {
	case "min":
		return "at least"
	case "max":
		return "at most"
	default:
		return tag
	}
}

// Aggregate returns the sum of the ten sub-scores. Out-of-range values are
// rejected rather than clamped.
func Aggregate(s SubScores) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	total := 0
	for _, v := range s.Values() {
		total += v
	}
	return total, nil
}

// Validate checks the record's date and scores and that its total equals
// their sum.
func (r Record) Validate() error {
	if err := validateDate(r.DateFound); err != nil {
		return err
	}
	total, err := Aggregate(r.Scores)
	if err != nil {
		return err
	}
	if r.TotalPoints != total {
		return &ValidationError{
			Field:  "totalPoints",
			Value:  r.TotalPoints,
			Reason: fmt.Sprintf("does not match sub-score sum %d", total),
		}
	}
	return nil
}

func validateDate(d Date) error {
	if d.IsZero() {
		return &ValidationError{Field: "dateFound", Value: `""`, Reason: "must be a calendar date"}
	}
	return nil
}
