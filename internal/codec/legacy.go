package codec

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// cardV4 stored deck membership as a set of ids.
type cardV4 struct {
	ID           uuid.UUID   `json:"id"`
	Word         string      `json:"word"`
	Meaning      string      `json:"meaning"`
	Example      string      `json:"example"`
	Article      string      `json:"article"`
	Plural       string      `json:"plural"`
	DeckIDs      []uuid.UUID `json:"deckIds"`
	TimesShown   int         `json:"timesShown"`
	TimesCorrect int         `json:"timesCorrect"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (r cardV4) toCard() *domain.Card {
	c := baseCard(r.ID, r.Word, r.Meaning, r.Example, r.CreatedAt)
	c.Annotations = domain.Annotations{Article: r.Article, Plural: r.Plural}
	for _, id := range r.DeckIDs {
		c.AddDeck(id)
	}
	c.Attempts = r.TimesShown
	c.Successes = r.TimesCorrect
	return c
}

// cardV3 stored deck membership as a single optional id.
type cardV3 struct {
	ID           uuid.UUID  `json:"id"`
	Word         string     `json:"word"`
	Meaning      string     `json:"meaning"`
	Example      string     `json:"example"`
	DeckID       *uuid.UUID `json:"deckId"`
	TimesShown   int        `json:"timesShown"`
	TimesCorrect int        `json:"timesCorrect"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (r cardV3) toCard() *domain.Card {
	c := baseCard(r.ID, r.Word, r.Meaning, r.Example, r.CreatedAt)
	if r.DeckID != nil {
		c.AddDeck(*r.DeckID)
	}
	c.Attempts = r.TimesShown
	c.Successes = r.TimesCorrect
	return c
}

// cardV2 had progress counters but no deck membership.
type cardV2 struct {
	ID           uuid.UUID `json:"id"`
	Word         string    `json:"word"`
	Meaning      string    `json:"meaning"`
	Example      string    `json:"example"`
	TimesShown   int       `json:"timesShown"`
	TimesCorrect int       `json:"timesCorrect"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r cardV2) toCard() *domain.Card {
	c := baseCard(r.ID, r.Word, r.Meaning, r.Example, r.CreatedAt)
	c.Attempts = r.TimesShown
	c.Successes = r.TimesCorrect
	return c
}

// cardV1 is the original shape: text fields only.
type cardV1 struct {
	ID      uuid.UUID `json:"id"`
	Word    string    `json:"word"`
	Meaning string    `json:"meaning"`
	Example string    `json:"example"`
}

func (r cardV1) toCard() *domain.Card {
	return baseCard(r.ID, r.Word, r.Meaning, r.Example, time.Time{})
}

// baseCard maps the fields every schema shares. A missing creation time is
// replaced by the migration time so sorting stays meaningful.
func baseCard(id uuid.UUID, word, meaning, example string, createdAt time.Time) *domain.Card {
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &domain.Card{
		ID:        id,
		Term:      word,
		Meaning:   meaning,
		Example:   example,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
