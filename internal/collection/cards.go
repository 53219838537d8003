package collection

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CreateCard appends a new card belonging to the given user decks.
// Uncategorized ids are ignored; unknown ids fail with ErrDeckNotFound and
// Learning/Learnt ids with ErrProtectedDeck.
func (e *Engine) CreateCard(fields domain.CardFields, deckIDs []uuid.UUID) (*domain.Card, error) {
	ids, err := e.userDeckIDs(deckIDs)
	if err != nil {
		return nil, err
	}

	card := domain.NewCard(fields, ids)
	e.cards = append(e.cards, card)

	e.logger.Debug("created card",
		slog.String("card_id", card.ID.String()),
		slog.Int("deck_count", len(ids)))
	return card.Clone(), nil
}

// UpdateCard replaces the editable fields and the user deck membership of a
// card. Learning/Learnt membership is kept.
func (e *Engine) UpdateCard(id uuid.UUID, fields domain.CardFields, deckIDs []uuid.UUID) (*domain.Card, error) {
	card := e.findCard(id)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	ids, err := e.userDeckIDs(deckIDs)
	if err != nil {
		return nil, err
	}

	var system []uuid.UUID
	for _, name := range []string{domain.LearningDeckName, domain.LearntDeckName} {
		if d := e.systemDeck(name); d != nil && card.InDeck(d.ID) {
			system = append(system, d.ID)
		}
	}

	card.SetFields(fields)
	card.DeckIDs = nil
	for _, did := range slices.Concat(ids, system) {
		card.AddDeck(did)
	}

	e.logger.Debug("updated card", slog.String("card_id", id.String()))
	return card.Clone(), nil
}

// DeleteCards removes the cards with the given ids and returns how many existed.
func (e *Engine) DeleteCards(ids []uuid.UUID) int {
	before := len(e.cards)
	e.cards = slices.DeleteFunc(e.cards, func(c *domain.Card) bool {
		return slices.Contains(ids, c.ID)
	})
	removed := before - len(e.cards)

	e.logger.Debug("deleted cards",
		slog.Int("requested", len(ids)),
		slog.Int("removed", removed))
	return removed
}

// AssignCardToDeck adds a user deck to a card's membership.
// Assigning a deck the card already belongs to is a no-op.
func (e *Engine) AssignCardToDeck(cardID, deckID uuid.UUID) (*domain.Card, error) {
	card := e.findCard(cardID)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	deck := e.findDeck(deckID)
	if deck == nil {
		return nil, domain.ErrDeckNotFound
	}
	if deck.IsSystem() {
		return nil, domain.ErrProtectedDeck
	}

	card.AddDeck(deckID)
	return card.Clone(), nil
}

// RemoveCardFromDeck removes a single user deck from a card's membership.
// A card left without user decks shows up under Uncategorized.
func (e *Engine) RemoveCardFromDeck(cardID, deckID uuid.UUID) (*domain.Card, error) {
	card := e.findCard(cardID)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	deck := e.findDeck(deckID)
	if deck == nil {
		return nil, domain.ErrDeckNotFound
	}
	if deck.IsSystem() {
		return nil, domain.ErrProtectedDeck
	}

	card.RemoveDeck(deckID)
	return card.Clone(), nil
}

// userDeckIDs validates ids a caller wants a card to belong to and returns
// them deduplicated with Uncategorized removed.
func (e *Engine) userDeckIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		d := e.findDeck(id)
		if d == nil {
			return nil, domain.ErrDeckNotFound
		}
		if d.IsSystem() {
			if d.Name == domain.UncategorizedDeckName {
				continue
			}
			return nil, domain.ErrProtectedDeck
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}
