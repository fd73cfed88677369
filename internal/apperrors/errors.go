// Package apperrors defines the error taxonomy shared by the ledger, the
// progress calculator and their callers.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced goal does not exist.
var ErrNotFound = errors.New("goal not found")

// ErrAmbiguous indicates that an id prefix matched more than one goal.
var ErrAmbiguous = errors.New("ambiguous goal id")

// ErrValidation indicates that caller-supplied input failed a precondition.
var ErrValidation = errors.New("validation error")

// ErrPersistence indicates that the storage write failed. The mutation that
// triggered it was not applied.
var ErrPersistence = errors.New("persistence error")

// ErrDegenerate indicates goal values that make a progress term undefined.
var ErrDegenerate = errors.New("degenerate goal arithmetic")

// ErrZeroTarget is reported when a goal's target amount is not positive.
var ErrZeroTarget = fmt.Errorf("%w: target amount is zero", ErrDegenerate)

// ErrZeroHorizon is reported when a goal's target date is not after its creation time.
var ErrZeroHorizon = fmt.Errorf("%w: target date is not after creation", ErrDegenerate)

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid returns a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
