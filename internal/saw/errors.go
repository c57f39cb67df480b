package saw

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCriteria is returned when no criteria are supplied.
	ErrNoCriteria = errors.New("no criteria defined")
	// ErrNoAlternatives is returned when no alternatives are supplied.
	ErrNoAlternatives = errors.New("no alternatives defined")
	// ErrMissingValue matches any *MissingValueError via errors.Is.
	ErrMissingValue = errors.New("missing or invalid value")
)

// MissingValueError names the first alternative/criterion cell that is
// absent or not a finite number.
type MissingValueError struct {
	AlternativeID   string
	AlternativeName string
	CriterionID     string
	CriterionName   string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing or invalid value for alternative %q on criterion %q", e.AlternativeName, e.CriterionName)
}

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// ErrorKind returns a stable machine-readable name for a validation error,
// or "" when err is not one.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNoCriteria):
		return "no_criteria"
	case errors.Is(err, ErrNoAlternatives):
		return "no_alternatives"
	case errors.Is(err, ErrMissingValue):
		return "missing_value"
	default:
		return ""
	}
}
