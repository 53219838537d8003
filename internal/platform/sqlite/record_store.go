package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/flashdeck/internal/store"
)

const (
	loadQuery = `SELECT payload FROM records WHERE key = ?`
	saveQuery = `INSERT INTO records (key, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// RecordStore implements store.Gateway on a SQLite database.
type RecordStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure RecordStore implements store.Gateway interface
var _ store.Gateway = (*RecordStore)(nil)

// NewRecordStore wraps an already migrated database.
// If logger is nil, a default logger will be used.
func NewRecordStore(db *sql.DB, logger *slog.Logger) *RecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_record_store")),
	}
}

// Open opens (creating if needed) the SQLite database at dsn, applies
// migrations and returns a ready RecordStore. dsn may be ":memory:".
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*RecordStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if err := Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewRecordStore(db, logger), nil
}

// DB returns the underlying database handle.
func (s *RecordStore) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database.
func (s *RecordStore) Close() error {
	return s.db.Close()
}

// Load implements store.Gateway.Load.
// Returns store.ErrNotFound if nothing was saved under key.
func (s *RecordStore) Load(ctx context.Context, key string) ([]byte, error) {
	if strings.TrimSpace(key) == "" {
		return nil, store.ErrEmptyKey
	}

	var payload []byte
	if err := s.db.QueryRowContext(ctx, loadQuery, key).Scan(&payload); err != nil {
		mapped := MapError(err)
		if !store.IsNotFoundError(mapped) {
			s.logger.ErrorContext(ctx, "failed to load record",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, store.NewStoreError(key, "load", failureMessage(err, "query failed"), mapped)
	}
	return payload, nil
}

// Save implements store.Gateway.Save.
func (s *RecordStore) Save(ctx context.Context, key string, payload []byte) error {
	if err := save(ctx, s.db, key, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to save record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	s.logger.DebugContext(ctx, "saved record",
		slog.String("key", key),
		slog.Int("bytes", len(payload)))
	return nil
}

// SaveAll implements store.Gateway.SaveAll in a single transaction.
func (s *RecordStore) SaveAll(ctx context.Context, records ...store.Record) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, r := range records {
			if err := save(ctx, tx, r.Key, r.Payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save records",
			slog.Int("count", len(records)),
			slog.String("error", err.Error()))
		return err
	}
	s.logger.DebugContext(ctx, "saved records", slog.Int("count", len(records)))
	return nil
}

func save(ctx context.Context, q store.DBTX, key string, payload []byte) error {
	if strings.TrimSpace(key) == "" {
		return store.ErrEmptyKey
	}
	if payload == nil {
		payload = []byte{}
	}
	if _, err := q.ExecContext(ctx, saveQuery, key, payload, time.Now().UTC()); err != nil {
		return store.NewStoreError(key, "save", failureMessage(err, "upsert failed"), MapError(err))
	}
	return nil
}
