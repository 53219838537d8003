package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to load cards: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "store error around ErrNotFound",
			err:      NewStoreError(KeyDecks, "load", "no row", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrEmptyKey",
			err:      ErrEmptyKey,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestErrEmptyKeyIsInvalidRecord(t *testing.T) {
	assert.ErrorIs(t, ErrEmptyKey, ErrInvalidRecord)
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("disk I/O error")
	storeErr := NewStoreError(KeyCards, "save", "database error", originalErr)

	assert.Equal(t, `save of record "cards" failed: database error: disk I/O error`, storeErr.Error())
	assert.ErrorIs(t, storeErr, originalErr)

	bare := NewStoreError(KeyCards, "load", "empty payload", nil)
	assert.Equal(t, `load of record "cards" failed: empty payload`, bare.Error())
	assert.Nil(t, bare.Unwrap())
}
