package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Annotations holds optional linguistic data attached to a card.
// The engine never interprets these values; they are carried through
// persistence and the CSV exchange format unchanged.
type Annotations struct {
	Article        string `json:"article,omitempty"`
	Plural         string `json:"plural,omitempty"`
	PastTense      string `json:"pastTense,omitempty"`
	PastParticiple string `json:"pastParticiple,omitempty"`
}

// CardFields is the user-editable part of a card.
type CardFields struct {
	Term        string
	Meaning     string
	Example     string
	Annotations Annotations
}

// Card is a single term/definition study unit.
//
// DeckIDs is the only source of deck membership. Learning and Learnt
// membership is written exclusively by the learning statistics engine.
type Card struct {
	ID          uuid.UUID
	Term        string
	Meaning     string
	Example     string
	Annotations Annotations
	DeckIDs     []uuid.UUID
	Attempts    int
	Successes   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCard creates a card with a fresh ID and zeroed counters.
// Empty term or meaning is accepted; callers validate input.
func NewCard(fields CardFields, deckIDs []uuid.UUID) *Card {
	now := time.Now().UTC()
	c := &Card{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.SetFields(fields)
	for _, id := range deckIDs {
		c.AddDeck(id)
	}
	return c
}

// Fields returns the editable fields of the card.
func (c *Card) Fields() CardFields {
	return CardFields{
		Term:        c.Term,
		Meaning:     c.Meaning,
		Example:     c.Example,
		Annotations: c.Annotations,
	}
}

// SetFields replaces the editable fields and bumps UpdatedAt.
func (c *Card) SetFields(f CardFields) {
	c.Term = f.Term
	c.Meaning = f.Meaning
	c.Example = f.Example
	c.Annotations = f.Annotations
	c.UpdatedAt = time.Now().UTC()
}

// InDeck reports whether the card is stored as a member of the deck.
func (c *Card) InDeck(deckID uuid.UUID) bool {
	return slices.Contains(c.DeckIDs, deckID)
}

// AddDeck adds the deck to the card's membership. Adding twice is a no-op.
func (c *Card) AddDeck(deckID uuid.UUID) bool {
	if deckID == uuid.Nil || c.InDeck(deckID) {
		return false
	}
	c.DeckIDs = append(c.DeckIDs, deckID)
	return true
}

// RemoveDeck removes the deck from the card's membership.
func (c *Card) RemoveDeck(deckID uuid.UUID) bool {
	i := slices.Index(c.DeckIDs, deckID)
	if i < 0 {
		return false
	}
	c.DeckIDs = slices.Delete(c.DeckIDs, i, i+1)
	return true
}

// Clone returns a deep copy so callers cannot mutate engine state.
func (c *Card) Clone() *Card {
	out := *c
	out.DeckIDs = slices.Clone(c.DeckIDs)
	return &out
}

// NormalizeCounters enforces 0 <= successes <= attempts.
func (c *Card) NormalizeCounters() {
	if c.Attempts < 0 {
		c.Attempts = 0
	}
	if c.Successes < 0 {
		c.Successes = 0
	}
	if c.Successes > c.Attempts {
		c.Successes = c.Attempts
	}
}
