// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the parent of every "referenced id does not exist" error.
	ErrNotFound = errors.New("not found")

	// ErrCardNotFound is returned when an operation references an unknown card.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrDeckNotFound is returned when an operation references an unknown deck.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrEmptyDeckName is returned when a deck name is blank after trimming.
	ErrEmptyDeckName = fmt.Errorf("%w: deck name cannot be empty", ErrValidation)

	// ErrDuplicateDeckName is returned when a deck name is already taken.
	ErrDuplicateDeckName = fmt.Errorf("%w: deck name already exists", ErrValidation)

	// ErrSameDeckName is returned when a rename would not change anything.
	ErrSameDeckName = fmt.Errorf("%w: deck already has this name", ErrValidation)

	// ErrProtectedDeck is returned when a user operation targets a system deck.
	ErrProtectedDeck = fmt.Errorf("%w: system decks cannot be modified", ErrValidation)

	// ErrNestingTooDeep is returned when a sub-deck would be created below another sub-deck.
	ErrNestingTooDeep = fmt.Errorf("%w: sub-decks cannot contain sub-decks", ErrValidation)
)

// ValidationError carries the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
