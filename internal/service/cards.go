package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// CreateCard adds a card to the given user decks. With no decks the card
// shows up under Uncategorized.
func (l *Library) CreateCard(ctx context.Context, fields domain.CardFields, deckIDs []uuid.UUID) (*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.engine.CreateCard(fields, deckIDs)
	if err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, l.logger).Info("created card",
		slog.String("card_id", card.ID.String()))
	return card, l.persist(ctx, "create_card")
}

// UpdateCard replaces a card's fields and user deck membership.
func (l *Library) UpdateCard(
	ctx context.Context,
	id uuid.UUID,
	fields domain.CardFields,
	deckIDs []uuid.UUID,
) (*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.engine.UpdateCard(id, fields, deckIDs)
	if err != nil {
		return nil, err
	}
	return card, l.persist(ctx, "update_card")
}

// DeleteCards removes the given cards and returns how many existed. Unknown
// ids are ignored; when none of the ids exist nothing is saved.
func (l *Library) DeleteCards(ctx context.Context, ids []uuid.UUID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := l.engine.DeleteCards(ids)
	if removed == 0 {
		return 0, nil
	}
	logger.FromContextOrDefault(ctx, l.logger).Info("deleted cards",
		slog.Int("count", removed))
	return removed, l.persist(ctx, "delete_cards")
}

// AssignCardToDeck adds a user deck to a card's membership.
func (l *Library) AssignCardToDeck(ctx context.Context, cardID, deckID uuid.UUID) (*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.engine.AssignCardToDeck(cardID, deckID)
	if err != nil {
		return nil, err
	}
	return card, l.persist(ctx, "assign_card")
}

// RemoveCardFromDeck removes a user deck from a card's membership.
func (l *Library) RemoveCardFromDeck(ctx context.Context, cardID, deckID uuid.UUID) (*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.engine.RemoveCardFromDeck(cardID, deckID)
	if err != nil {
		return nil, err
	}
	return card, l.persist(ctx, "remove_card")
}

// Cards returns every card in creation order.
func (l *Library) Cards() []*domain.Card {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.Cards()
}

// Card returns one card.
func (l *Library) Card(id uuid.UUID) (*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.Card(id)
}
