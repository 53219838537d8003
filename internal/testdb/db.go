package testdb

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/platform/postgres"
)

// OpenPostgres opens a record store against the test database and empties it.
// The store is emptied and closed again when the test finishes.
func OpenPostgres(t *testing.T) *postgres.RecordStore {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		if IsCI() {
			t.Fatalf("no test database configured: set %s or %s", EnvTestDBURL, EnvDatabaseURL)
		}
		t.Skipf("%s not set", EnvTestDBURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := postgres.Open(ctx, dbURL, logger)
	if err != nil {
		t.Fatalf("open test database %s: %v", MaskURL(dbURL), err)
	}

	truncate(t, s)
	t.Cleanup(func() {
		truncate(t, s)
		_ = s.Close()
	})
	return s
}

func truncate(t *testing.T, s *postgres.RecordStore) {
	t.Helper()
	if _, err := s.DB().Exec(`DELETE FROM records`); err != nil {
		t.Errorf("clear records: %v", err)
	}
}
