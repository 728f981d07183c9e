package review

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a sub-score, range expression or
	// request field is outside its allowed domain.
	ErrValidation = errors.New("validation failed")

	// ErrStorageUnavailable is returned when the data file cannot be read,
	// parsed or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrIndexOutOfRange is returned when a delete targets a position that
	// does not exist in the caller's view.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStaleView is returned when the record at a position no longer
	// matches what the caller last saw.
	ErrStaleView = errors.New("stale view")
)

// ValidationError describes a single rejected value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%v %s", ErrValidation, e.Field, e.Value, e.Reason)
}

// Is reports ValidationError as ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
