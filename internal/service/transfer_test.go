package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importHeader = "Word,Meaning,Example,Article,Plural,Past Tense,Past Participle,Decks,Attempts,Successes,Mastery"

func cardByTerm(t *testing.T, lib *service.Library, term string) *domain.Card {
	t.Helper()
	for _, c := range lib.Cards() {
		if c.Term == term {
			return c
		}
	}
	t.Fatalf("card %q not found", term)
	return nil
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	gw := mocks.NewMockGateway()
	lib, _ := loadedLibrary(t, gw)

	animals, err := lib.CreateDeck(ctx, "Animals", nil)
	require.NoError(t, err)

	text := strings.Join([]string{
		importHeader,
		"Hund,dog,,der,Hunde,,,Animals; Pets,4,1,25",
		",missing word,,,,,,,,,",
		"Katze,cat,,,,,,Learnt,3,3,",
		"",
		"Maus,mouse",
		"Vogel,,,,,,,,,,",
	}, "\n")

	result, err := lib.ImportCSV(ctx, text, service.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, []string{"Pets"}, result.CreatedDecks)
	assert.Equal(t, []string{
		"line 3: missing word or meaning",
		"line 7: missing word or meaning",
	}, result.Errors)

	pets := deckNamed(t, lib, "Pets")
	assert.Nil(t, pets.ParentID, "imported decks are top-level")

	hund := cardByTerm(t, lib, "Hund")
	assert.True(t, hund.InDeck(animals.ID))
	assert.True(t, hund.InDeck(pets.ID))
	assert.True(t, hund.InDeck(deckNamed(t, lib, domain.LearningDeckName).ID))
	assert.Equal(t, domain.Annotations{Article: "der", Plural: "Hunde"}, hund.Annotations)
	assert.Equal(t, 4, hund.Attempts)
	assert.Equal(t, 1, hund.Successes)

	// A system deck name never creates or assigns a deck; the counters decide.
	katze := cardByTerm(t, lib, "Katze")
	assert.Equal(t, 3, katze.Attempts)
	assert.True(t, katze.InDeck(deckNamed(t, lib, domain.LearntDeckName).ID))

	uncategorized, err := lib.CardsInDeck(deckNamed(t, lib, domain.UncategorizedDeckName).ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Katze", "Maus"}, terms(uncategorized))

	reloaded, _ := loadedLibrary(t, gw)
	assert.Len(t, reloaded.Cards(), 3)
}

func TestImportCSV_TargetDeck(t *testing.T) {
	ctx := context.Background()

	t.Run("user deck receives rows without decks", func(t *testing.T) {
		lib, _ := loadedLibrary(t, mocks.NewMockGateway())
		inbox, err := lib.CreateDeck(ctx, "Inbox", nil)
		require.NoError(t, err)

		text := importHeader + "\nHund,dog,,,,,,Animals,,,\nMaus,mouse\n"
		result, err := lib.ImportCSV(ctx, text, service.ImportOptions{TargetDeckID: &inbox.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)

		members, err := lib.CardsInDeck(inbox.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Maus"}, terms(members))
	})

	t.Run("uncategorized target", func(t *testing.T) {
		lib, _ := loadedLibrary(t, mocks.NewMockGateway())
		target := deckNamed(t, lib, domain.UncategorizedDeckName)

		result, err := lib.ImportCSV(ctx, importHeader+"\nMaus,mouse", service.ImportOptions{TargetDeckID: &target.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, cardByTerm(t, lib, "Maus").DeckIDs)
	})

	tests := []struct {
		name    string
		target  func(lib *service.Library) uuid.UUID
		wantErr error
	}{
		{
			name:    "learnt deck",
			target:  func(lib *service.Library) uuid.UUID { return deckNamed(t, lib, domain.LearntDeckName).ID },
			wantErr: domain.ErrProtectedDeck,
		},
		{
			name:    "learning deck",
			target:  func(lib *service.Library) uuid.UUID { return deckNamed(t, lib, domain.LearningDeckName).ID },
			wantErr: domain.ErrProtectedDeck,
		},
		{
			name:    "unknown deck",
			target:  func(*service.Library) uuid.UUID { return uuid.New() },
			wantErr: domain.ErrDeckNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewMockGateway()
			lib, _ := loadedLibrary(t, gw)
			saves := gw.SaveCount(store.KeyCards)

			id := tt.target(lib)
			result, err := lib.ImportCSV(ctx, importHeader+"\nMaus,mouse", service.ImportOptions{TargetDeckID: &id})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, lib.Cards())
			assert.Equal(t, saves, gw.SaveCount(store.KeyCards))
		})
	}
}

func TestImportCSV_NothingToImport(t *testing.T) {
	ctx := context.Background()
	gw := mocks.NewMockGateway()
	lib, _ := loadedLibrary(t, gw)
	saves := gw.SaveCount(store.KeyCards)

	t.Run("header only", func(t *testing.T) {
		result, err := lib.ImportCSV(ctx, importHeader+"\n\n", service.ImportOptions{})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, transfer.ErrEmptyImport)
	})

	t.Run("only bad rows", func(t *testing.T) {
		result, err := lib.ImportCSV(ctx, importHeader+"\n,,\n", service.ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, []string{"line 2: missing word or meaning"}, result.Errors)
	})

	assert.Equal(t, saves, gw.SaveCount(store.KeyCards))
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	lib, _ := loadedLibrary(t, mocks.NewMockGateway())

	animals, err := lib.CreateDeck(ctx, "Animals", nil)
	require.NoError(t, err)
	hund, err := lib.CreateCard(ctx, domain.CardFields{
		Term:        "Hund",
		Meaning:     "dog",
		Example:     `Der Hund sagt "wau"`,
		Annotations: domain.Annotations{Article: "der", Plural: "Hunde"},
	}, []uuid.UUID{animals.ID})
	require.NoError(t, err)
	for _, ok := range []bool{true, false} {
		_, _, err := lib.RecordShown(ctx, hund.ID, ok)
		require.NoError(t, err)
	}
	_, err = lib.CreateCard(ctx, domain.CardFields{Term: "Maus", Meaning: "mouse"}, nil)
	require.NoError(t, err)

	t.Run("deck scope", func(t *testing.T) {
		out, err := lib.ExportCSV(&animals.ID)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, importHeader, lines[0])
		assert.Equal(t, `Hund,dog,"Der Hund sagt ""wau""",der,Hunde,,,Animals,2,1,50`, lines[1])
	})

	t.Run("unknown deck", func(t *testing.T) {
		_, err := lib.ExportCSV(new(uuid.UUID))
		assert.ErrorIs(t, err, domain.ErrDeckNotFound)
	})

	t.Run("round trip into an empty library", func(t *testing.T) {
		out, err := lib.ExportCSV(nil)
		require.NoError(t, err)

		target, _ := loadedLibrary(t, mocks.NewMockGateway())
		result, err := target.ImportCSV(ctx, out, service.ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)
		assert.Equal(t, []string{"Animals"}, result.CreatedDecks)

		for _, want := range lib.Cards() {
			got := cardByTerm(t, target, want.Term)
			assert.Equal(t, want.Fields(), got.Fields())
			assert.Equal(t, want.Attempts, got.Attempts)
			assert.Equal(t, want.Successes, got.Successes)
		}
	})
}
