package collection

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
)

// RecordShown records one study attempt for a card and refiles it under
// Learning or Learnt according to its new counters.
func (e *Engine) RecordShown(cardID uuid.UUID, wasCorrect bool) (*domain.Card, learning.Classification, error) {
	card := e.findCard(cardID)
	if card == nil {
		return nil, learning.Unattempted, domain.ErrCardNotFound
	}

	card.Attempts++
	if wasCorrect {
		card.Successes++
	}
	cls := e.classify(card)

	e.logger.Debug("recorded attempt",
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", wasCorrect),
		slog.String("classification", cls.String()))
	return card.Clone(), cls, nil
}

// SetStatistics overwrites a card's counters, clamping them to valid values,
// and refiles the card. It is used when counters come from an import.
func (e *Engine) SetStatistics(cardID uuid.UUID, attempts, successes int) (*domain.Card, error) {
	card := e.findCard(cardID)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	card.Attempts = attempts
	card.Successes = successes
	card.NormalizeCounters()
	e.classify(card)
	return card.Clone(), nil
}

// ResetStatistics zeroes every card's counters, which empties both the
// Learning and the Learnt deck. It returns the number of cards touched.
func (e *Engine) ResetStatistics() int {
	for _, c := range e.cards {
		c.Attempts = 0
		c.Successes = 0
		e.classify(c)
	}
	e.logger.Info("reset learning statistics", slog.Int("card_count", len(e.cards)))
	return len(e.cards)
}

// Classification returns the current classification of a card.
func (e *Engine) Classification(cardID uuid.UUID) (learning.Classification, error) {
	card := e.findCard(cardID)
	if card == nil {
		return learning.Unattempted, domain.ErrCardNotFound
	}
	return e.learning.Classify(card), nil
}

// classify moves the card into exactly the system deck its counters call for.
func (e *Engine) classify(card *domain.Card) learning.Classification {
	cls := e.learning.Classify(card)

	learningDeck := e.systemDeck(domain.LearningDeckName)
	learntDeck := e.systemDeck(domain.LearntDeckName)
	if learningDeck == nil || learntDeck == nil {
		return cls
	}

	switch cls {
	case learning.Learnt:
		card.RemoveDeck(learningDeck.ID)
		card.AddDeck(learntDeck.ID)
	case learning.Learning:
		card.RemoveDeck(learntDeck.ID)
		card.AddDeck(learningDeck.ID)
	default:
		card.RemoveDeck(learningDeck.ID)
		card.RemoveDeck(learntDeck.ID)
	}
	return cls
}
