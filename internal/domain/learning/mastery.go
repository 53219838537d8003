package learning

import (
	"math"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Classification is the learning state a card is filed under.
type Classification int

const (
	// Unattempted cards have never been shown and belong to neither system deck.
	Unattempted Classification = iota
	// Learning cards have been shown but are not fully learned.
	Learning
	// Learnt cards have 100% mastery over at least LearntMinAttempts attempts.
	Learnt
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case Learning:
		return "learning"
	case Learnt:
		return "learnt"
	default:
		return "unattempted"
	}
}

// MasteryPercentage returns round(successes/attempts*100).
// The second result is false when the card has never been attempted,
// in which case the percentage is undefined.
func MasteryPercentage(attempts, successes int) (int, bool) {
	if attempts <= 0 {
		return 0, false
	}
	return int(math.Round(float64(successes) / float64(attempts) * 100)), true
}

// CardMastery is MasteryPercentage for a card.
func CardMastery(card *domain.Card) (int, bool) {
	return MasteryPercentage(card.Attempts, card.Successes)
}

// classify files a card using the given parameters.
func classify(card *domain.Card, params *Params) Classification {
	pct, ok := CardMastery(card)
	if !ok {
		return Unattempted
	}
	if pct == 100 && card.Attempts >= params.LearntMinAttempts {
		return Learnt
	}
	return Learning
}

// Classify files a card using the default parameters.
func Classify(card *domain.Card) Classification {
	return classify(card, NewDefaultParams())
}

// score computes the study priority; lower values are studied sooner.
func score(card *domain.Card, params *Params) int {
	pct, ok := CardMastery(card)
	if !ok {
		return 0
	}

	s := pct +
		min(card.Attempts*params.AttemptWeight, params.AttemptCap) +
		min(card.Successes*params.SuccessWeight, params.SuccessCap)

	if pct < params.WeakThreshold {
		s -= params.WeakPenalty
	}
	return s
}

// Score computes the study priority with the default parameters.
func Score(card *domain.Card) int {
	return score(card, NewDefaultParams())
}
