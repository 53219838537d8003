package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	fields := CardFields{
		Term:        "Haus",
		Meaning:     "house",
		Example:     "Das Haus ist alt.",
		Annotations: Annotations{Article: "das", Plural: "Häuser"},
	}

	card := NewCard(fields, []uuid.UUID{deckID, deckID, uuid.Nil})

	require.NotNil(t, card)
	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, fields, card.Fields())
	assert.Equal(t, []uuid.UUID{deckID}, card.DeckIDs, "duplicates and nil ids are dropped")
	assert.Zero(t, card.Attempts)
	assert.Zero(t, card.Successes)
	assert.False(t, card.CreatedAt.IsZero())
}

func TestNewCardAcceptsEmptyFields(t *testing.T) {
	t.Parallel()

	card := NewCard(CardFields{}, nil)
	assert.Empty(t, card.Term)
	assert.Empty(t, card.DeckIDs)
}

func TestCardDeckMembership(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	card := NewCard(CardFields{Term: "x", Meaning: "y"}, nil)

	assert.True(t, card.AddDeck(a))
	assert.False(t, card.AddDeck(a))
	assert.True(t, card.AddDeck(b))
	assert.True(t, card.InDeck(a))

	assert.True(t, card.RemoveDeck(a))
	assert.False(t, card.RemoveDeck(a))
	assert.Equal(t, []uuid.UUID{b}, card.DeckIDs)
}

func TestCardClone(t *testing.T) {
	t.Parallel()

	card := NewCard(CardFields{Term: "x"}, []uuid.UUID{uuid.New()})
	clone := card.Clone()
	clone.DeckIDs[0] = uuid.New()
	clone.Term = "changed"

	assert.NotEqual(t, card.DeckIDs[0], clone.DeckIDs[0])
	assert.Equal(t, "x", card.Term)
}

func TestNormalizeCounters(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name              string
		attempts, success int
		wantA, wantS      int
	}{
		{"valid", 4, 2, 4, 2},
		{"successes above attempts", 2, 5, 2, 2},
		{"negative attempts", -1, 0, 0, 0},
		{"negative successes", 3, -2, 3, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Card{Attempts: tc.attempts, Successes: tc.success}
			c.NormalizeCounters()
			assert.Equal(t, tc.wantA, c.Attempts)
			assert.Equal(t, tc.wantS, c.Successes)
		})
	}
}
