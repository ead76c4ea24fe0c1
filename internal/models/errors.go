package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the stores, the allocation engine and the services.
var (
	// ErrNotFound is returned when a receipt, bill or split set is absent.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a request references unknown data or is malformed.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a rejected input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	// Field names the offending input (e.g. "user_id").
	Field string

	// ID is the offending identifier, if the rejection is about one.
	ID string

	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %s", e.Field, e.ID, e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundf builds an error wrapping ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
