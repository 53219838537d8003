package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// CreateDeck creates a top-level deck, or a sub-deck of parentID.
func (l *Library) CreateDeck(ctx context.Context, name string, parentID *uuid.UUID) (*domain.Deck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deck, err := l.engine.CreateDeck(name, parentID)
	if err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, l.logger).Info("created deck",
		slog.String("deck_id", deck.ID.String()),
		slog.String("name", deck.Name))
	return deck, l.persist(ctx, "create_deck")
}

// RenameDeck renames a user deck.
func (l *Library) RenameDeck(ctx context.Context, id uuid.UUID, newName string) (*domain.Deck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deck, err := l.engine.RenameDeck(id, newName)
	if err != nil {
		return nil, err
	}
	return deck, l.persist(ctx, "rename_deck")
}

// DeleteDeck deletes a user deck and its sub-decks and returns the ids of
// every deleted deck.
func (l *Library) DeleteDeck(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deleted, err := l.engine.DeleteDeck(id)
	if err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, l.logger).Info("deleted deck",
		slog.String("deck_id", id.String()),
		slog.Int("deleted_count", len(deleted)))
	return deleted, l.persist(ctx, "delete_deck")
}

// Decks returns every deck, flat, in creation order.
func (l *Library) Decks() []*domain.Deck {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.Decks()
}

// Deck returns one deck.
func (l *Library) Deck(id uuid.UUID) (*domain.Deck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.Deck(id)
}

// TopLevelDecks returns the decks without a parent, sorted by name.
func (l *Library) TopLevelDecks() []*domain.Deck {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.TopLevelDecks()
}

// SubDecks returns the children of a deck, sorted by name.
func (l *Library) SubDecks(parentID uuid.UUID) ([]*domain.Deck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.SubDecks(parentID)
}

// HierarchicalDecks returns top-level decks by name, each followed by its
// sub-decks by name.
func (l *Library) HierarchicalDecks() []*domain.Deck {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.HierarchicalDecks()
}

// CardsInDeck returns the members of a deck ordered by creation time.
func (l *Library) CardsInDeck(deckID uuid.UUID) ([]*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.CardsInDeck(deckID)
}
