package service

import (
	"errors"
	"fmt"
)

// Common service errors, checked with errors.Is.
var (
	// ErrPersistFailed means the in-memory change was applied but writing it
	// to the gateway failed. The API layer maps it to 500.
	ErrPersistFailed = errors.New("change applied but not persisted")

	// ErrLoadFailed means the gateway could not be read. The library stays
	// usable and empty.
	ErrLoadFailed = errors.New("failed to load library")
)

// LibraryError is a custom error type for library failures.
type LibraryError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LibraryError.
func (e *LibraryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("library %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("library %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LibraryError) Unwrap() error {
	return e.Err
}

// NewLibraryError creates a new LibraryError.
func NewLibraryError(operation, message string, err error) *LibraryError {
	return &LibraryError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
