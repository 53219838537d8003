package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
)

// CreateDeckRequest defines the payload for creating a deck or sub-deck.
type CreateDeckRequest struct {
	Name     string     `json:"name"      validate:"required,max=200"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// RenameDeckRequest defines the payload for renaming a deck.
type RenameDeckRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CardRequest defines the payload for creating or updating a card.
type CardRequest struct {
	Term           string      `json:"term"            validate:"required,max=1000"`
	Meaning        string      `json:"meaning"         validate:"required,max=1000"`
	Example        string      `json:"example"         validate:"max=4000"`
	Article        string      `json:"article"         validate:"max=100"`
	Plural         string      `json:"plural"          validate:"max=200"`
	PastTense      string      `json:"past_tense"      validate:"max=200"`
	PastParticiple string      `json:"past_participle" validate:"max=200"`
	DeckIDs        []uuid.UUID `json:"deck_ids"`
}

// Fields converts the request to the editable card fields.
func (c CardRequest) Fields() domain.CardFields {
	return domain.CardFields{
		Term:    c.Term,
		Meaning: c.Meaning,
		Example: c.Example,
		Annotations: domain.Annotations{
			Article:        c.Article,
			Plural:         c.Plural,
			PastTense:      c.PastTense,
			PastParticiple: c.PastParticiple,
		},
	}
}

// DeleteCardsRequest defines the payload for deleting cards in bulk.
type DeleteCardsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// AttemptRequest records one study attempt.
type AttemptRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// DeckResponse is the API shape of a deck.
type DeckResponse struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ParentID   *uuid.UUID  `json:"parent_id,omitempty"`
	SubDeckIDs []uuid.UUID `json:"sub_deck_ids"`
	System     bool        `json:"system"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CardResponse is the API shape of a card.
type CardResponse struct {
	ID             uuid.UUID   `json:"id"`
	Term           string      `json:"term"`
	Meaning        string      `json:"meaning"`
	Example        string      `json:"example,omitempty"`
	Article        string      `json:"article,omitempty"`
	Plural         string      `json:"plural,omitempty"`
	PastTense      string      `json:"past_tense,omitempty"`
	PastParticiple string      `json:"past_participle,omitempty"`
	DeckIDs        []uuid.UUID `json:"deck_ids"`
	Attempts       int         `json:"attempts"`
	Successes      int         `json:"successes"`
	// Mastery is omitted for cards that were never shown.
	Mastery   *int      `json:"mastery,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttemptResponse reports a card after a study attempt.
type AttemptResponse struct {
	Card           CardResponse `json:"card"`
	Classification string       `json:"classification"`
}

// DeleteDeckResponse lists the ids of the deleted deck and its sub-decks.
type DeleteDeckResponse struct {
	Deleted []uuid.UUID `json:"deleted"`
}

// CountResponse reports how many items an operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

// ImportResponse reports the outcome of a CSV import.
type ImportResponse struct {
	Imported     int      `json:"imported"`
	Errors       []string `json:"errors"`
	CreatedDecks []string `json:"created_decks"`
}

// SummaryResponse counts cards per classification.
type SummaryResponse = learning.Summary

func deckToResponse(d *domain.Deck) DeckResponse {
	subs := d.SubDeckIDs
	if subs == nil {
		subs = []uuid.UUID{}
	}
	return DeckResponse{
		ID:         d.ID,
		Name:       d.Name,
		ParentID:   d.ParentID,
		SubDeckIDs: subs,
		System:     d.IsSystem(),
		CreatedAt:  d.CreatedAt,
	}
}

func decksToResponse(decks []*domain.Deck) []DeckResponse {
	out := make([]DeckResponse, len(decks))
	for i, d := range decks {
		out[i] = deckToResponse(d)
	}
	return out
}

func cardToResponse(c *domain.Card) CardResponse {
	deckIDs := c.DeckIDs
	if deckIDs == nil {
		deckIDs = []uuid.UUID{}
	}
	resp := CardResponse{
		ID:             c.ID,
		Term:           c.Term,
		Meaning:        c.Meaning,
		Example:        c.Example,
		Article:        c.Annotations.Article,
		Plural:         c.Annotations.Plural,
		PastTense:      c.Annotations.PastTense,
		PastParticiple: c.Annotations.PastParticiple,
		DeckIDs:        deckIDs,
		Attempts:       c.Attempts,
		Successes:      c.Successes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if pct, ok := learning.CardMastery(c); ok {
		resp.Mastery = &pct
	}
	return resp
}

func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardToResponse(c)
	}
	return out
}
