package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}
