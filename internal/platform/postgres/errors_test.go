package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
)

// Mock PgError creation helper
func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "records",
		ColumnName:     "payload",
		ConstraintName: "records_key_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	generic := errors.New("generic error")

	tests := []struct {
		name     string
		err      error
		target   error
		contains string
	}{
		{
			name:   "no rows",
			err:    sql.ErrNoRows,
			target: store.ErrNotFound,
		},
		{
			name:     "check violation",
			err:      newPgError("23514"),
			target:   store.ErrInvalidRecord,
			contains: "records_key_check",
		},
		{
			name:     "not null violation",
			err:      fmt.Errorf("exec: %w", newPgError("23502")),
			target:   store.ErrInvalidRecord,
			contains: "payload",
		},
		{
			name:   "program limit exceeded",
			err:    newPgError("54000"),
			target: store.ErrInvalidRecord,
		},
		{
			name:   "unmapped postgres error",
			err:    newPgError("40001"),
			target: nil,
		},
		{
			name:   "non-postgres error",
			err:    generic,
			target: generic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := postgres.MapError(tt.err)
			if tt.target == nil {
				assert.Same(t, tt.err, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.target)
			if tt.contains != "" {
				assert.Contains(t, mapped.Error(), tt.contains)
			}
		})
	}

	assert.NoError(t, postgres.MapError(nil))
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		undefined bool
	}{
		{name: "nil error"},
		{name: "non-postgres error", err: errors.New("generic error")},
		{name: "check violation", err: newPgError("23514")},
		{name: "undefined table", err: newPgError("42P01"), undefined: true},
		{name: "wrapped undefined table", err: fmt.Errorf("load: %w", newPgError("42P01")), undefined: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.undefined, postgres.IsUndefinedTable(tt.err))
		})
	}
}
