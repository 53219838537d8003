package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MapError maps a SQLite error to the store error vocabulary, wrapping the
// original error to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: constraint violation: %v", store.ErrInvalidRecord, err)
		case sqlite3.ErrTooBig:
			return fmt.Errorf("%w: payload too large: %v", store.ErrInvalidRecord, err)
		}
	}

	return err
}

// IsBusy reports whether err is a lock contention error from another
// connection holding the database.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked)
}

// failureMessage describes a failed query for a StoreError.
func failureMessage(err error, fallback string) string {
	if IsBusy(err) {
		return "database is locked by another connection"
	}
	return fallback
}
