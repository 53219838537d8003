package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all gateway implementations.
var (
	// ErrNotFound is returned when no payload exists for a key.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a record is rejected before or while
	// being written, e.g. an empty key or a constraint violation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrTransactionFailed is returned when a batch write cannot be committed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrEmptyKey indicates a Load or Save with a blank key.
	ErrEmptyKey = fmt.Errorf("%w: empty key", ErrInvalidRecord)
)

// IsNotFoundError reports whether err is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Key       string // The record key involved
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s of record %q failed: %s: %v",
			e.Operation,
			e.Key,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s of record %q failed: %s", e.Operation, e.Key, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given key, operation, message, and wrapped error.
func NewStoreError(key, operation, message string, err error) *StoreError {
	return &StoreError{
		Key:       key,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
