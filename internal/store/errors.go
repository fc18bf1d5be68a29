package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("User not found")

	// ErrInvalidID is returned when an identifier is not a 24-character hex string.
	ErrInvalidID = errors.New("Invalid user ID format")

	// ErrDuplicate is returned when a unique field collides with an existing record.
	ErrDuplicate = errors.New("email already exists")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("User validation failed")
)

// ValidationError lists the required fields that were missing or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field+" is required")
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
