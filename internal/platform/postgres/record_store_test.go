//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_Integration(t *testing.T) {
	s := testdb.OpenPostgres(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Load(ctx, store.KeyCards)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeyCards, []byte(`{"schema":5,"cards":[]}`)))
		require.NoError(t, s.Save(ctx, store.KeyCards, []byte(`{"schema":5,"cards":[{}]}`)))

		got, err := s.Load(ctx, store.KeyCards)
		require.NoError(t, err)
		assert.Equal(t, `{"schema":5,"cards":[{}]}`, string(got))
	})

	t.Run("save all rolls back on failure", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeyDecks, []byte("old")))

		err := s.SaveAll(ctx,
			store.Record{Key: store.KeyDecks, Payload: []byte("new")},
			store.Record{Key: " ", Payload: []byte("bad")},
		)
		require.ErrorIs(t, err, store.ErrEmptyKey)

		got, err := s.Load(ctx, store.KeyDecks)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		assert.NoError(t, postgres.Migrate(ctx, s.DB(), nil))
	})
}
