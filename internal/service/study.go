package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// RecordShown records one study attempt and returns the updated card with
// its new classification.
func (l *Library) RecordShown(
	ctx context.Context,
	cardID uuid.UUID,
	wasCorrect bool,
) (*domain.Card, learning.Classification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, cls, err := l.engine.RecordShown(cardID, wasCorrect)
	if err != nil {
		return nil, cls, err
	}
	return card, cls, l.persist(ctx, "record_shown")
}

// ResetStatistics zeroes every card's counters, emptying Learning and Learnt.
func (l *Library) ResetStatistics(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.engine.ResetStatistics()
	logger.FromContextOrDefault(ctx, l.logger).Info("reset statistics",
		slog.Int("card_count", n))
	return n, l.persist(ctx, "reset_statistics")
}

// StudyOrder returns the given cards, or every card when ids is empty,
// ordered for study: lowest learning score first. Unknown ids are skipped.
func (l *Library) StudyOrder(ids []uuid.UUID) []*domain.Card {
	l.mu.Lock()
	defer l.mu.Unlock()

	cards := l.engine.Cards()
	if len(ids) > 0 {
		cards = l.engine.CardsByID(ids)
	}
	return l.learning.SortForStudy(cards)
}

// StudyDeck returns the members of a deck ordered for study.
func (l *Library) StudyDeck(deckID uuid.UUID) ([]*domain.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cards, err := l.engine.CardsInDeck(deckID)
	if err != nil {
		return nil, err
	}
	return l.learning.SortForStudy(cards), nil
}

// Summary counts cards per classification, over the whole collection or,
// when deckID is set, over one deck.
func (l *Library) Summary(deckID *uuid.UUID) (learning.Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cards := l.engine.Cards()
	if deckID != nil {
		var err error
		if cards, err = l.engine.CardsInDeck(*deckID); err != nil {
			return learning.Summary{}, err
		}
	}
	return l.learning.Summary(cards), nil
}
