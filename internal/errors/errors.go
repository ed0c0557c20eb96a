// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrUnknownProgram indicates a program name could not be resolved
	// against the station grid, even after fuzzy matching.
	ErrUnknownProgram = errors.New("unknown program")

	// ErrUnknownMonth indicates a month name outside the Spanish calendar.
	ErrUnknownMonth = errors.New("unknown month")

	// ErrUnknownWeekday indicates a weekday name that could not be recognized.
	ErrUnknownWeekday = errors.New("unknown weekday")

	// ErrInvalidInput indicates caller-provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData indicates an import produced zero applied mutations.
	ErrNoData = errors.New("no valid data found")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StoreError represents content-store failures with context.
type StoreError struct {
	Op  string // operation being performed, e.g. "save_program"
	Key string // content key or record id, if any
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store error (op=%s, key=%s): %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store error (op=%s): %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new store error.
func NewStoreError(op, key string, err error) *StoreError {
	return &StoreError{
		Op:  op,
		Key: key,
		Err: err,
	}
}
