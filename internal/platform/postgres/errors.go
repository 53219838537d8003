package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgreSQL error codes
const (
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	undefinedTableCode      = "42P01"
	programLimitExceededErr = "54000"
)

// MapError maps a database error to the store error vocabulary.
// It wraps the original error to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidRecord,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidRecord,
				pgErr.ColumnName,
				err,
			)
		case programLimitExceededErr:
			return fmt.Errorf("%w: payload too large: %v", store.ErrInvalidRecord, err)
		}
	}

	return err
}

// IsUndefinedTable reports whether err means the records table is missing,
// i.e. migrations have not run.
func IsUndefinedTable(err error) bool {
	return hasCode(err, undefinedTableCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// failureMessage describes a failed query for a StoreError.
func failureMessage(err error, fallback string) string {
	if IsUndefinedTable(err) {
		return "records table missing, migrations have not run"
	}
	return fallback
}
