package collection

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := learning.NewServiceWithRand(learning.NewDefaultParams(), rand.New(rand.NewPCG(1, 2)), true)
	return NewEngine(svc, logger)
}

func fields(term string) domain.CardFields {
	return domain.CardFields{Term: term, Meaning: term + " meaning"}
}

func mustDeck(t *testing.T, e *Engine, name string, parent *uuid.UUID) *domain.Deck {
	t.Helper()
	d, err := e.CreateDeck(name, parent)
	require.NoError(t, err)
	return d
}

func mustCard(t *testing.T, e *Engine, term string, decks ...uuid.UUID) *domain.Card {
	t.Helper()
	c, err := e.CreateCard(fields(term), decks)
	require.NoError(t, err)
	return c
}

func systemID(t *testing.T, e *Engine, name string) uuid.UUID {
	t.Helper()
	d, ok := e.SystemDeck(name)
	require.True(t, ok, "system deck %s missing", name)
	return d.ID
}

func memberIDs(t *testing.T, e *Engine, deckID uuid.UUID) []uuid.UUID {
	t.Helper()
	cards, err := e.CardsInDeck(deckID)
	require.NoError(t, err)
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// checkInvariants verifies every collection invariant against internal state.
func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()

	deckIDs := make(map[uuid.UUID]*domain.Deck, len(e.decks))
	for _, d := range e.decks {
		deckIDs[d.ID] = d
	}
	for _, name := range domain.SystemDeckNames {
		require.NotNil(t, e.systemDeck(name), "system deck %s", name)
	}
	unc := e.systemDeck(domain.UncategorizedDeckName)
	lrn := e.systemDeck(domain.LearningDeckName)
	lnt := e.systemDeck(domain.LearntDeckName)

	for _, c := range e.cards {
		for _, id := range c.DeckIDs {
			require.Contains(t, deckIDs, id, "card %s references missing deck", c.ID)
			require.NotEqual(t, unc.ID, id, "uncategorized membership is never stored")
		}
		require.False(t, c.InDeck(lrn.ID) && c.InDeck(lnt.ID), "card in both learning and learnt")
		require.LessOrEqual(t, c.Successes, c.Attempts)
		require.GreaterOrEqual(t, c.Successes, 0)
	}

	for _, d := range e.decks {
		var want []uuid.UUID
		for _, other := range e.decks {
			if other.HasParent(d.ID) {
				want = append(want, other.ID)
			}
		}
		require.ElementsMatch(t, want, d.SubDeckIDs, "sub-decks of %s", d.Name)
		if d.ParentID != nil {
			require.Contains(t, deckIDs, *d.ParentID)
			parent := deckIDs[*d.ParentID]
			require.Nil(t, parent.ParentID, "%s is nested more than one level", d.Name)
			require.False(t, parent.IsSystem(), "%s sits under a system deck", d.Name)
		}

		var members []uuid.UUID
		for _, c := range e.cards {
			if c.InDeck(d.ID) || (d.ID == unc.ID && !slices.ContainsFunc(c.DeckIDs, func(id uuid.UUID) bool {
				return !deckIDs[id].IsSystem()
			})) {
				members = append(members, c.ID)
			}
		}
		require.ElementsMatch(t, members, memberIDs(t, e, d.ID), "members of %s", d.Name)
	}
}
