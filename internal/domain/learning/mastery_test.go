package learning

import (
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func card(attempts, successes int) *domain.Card {
	c := domain.NewCard(domain.CardFields{Term: "t", Meaning: "m"}, nil)
	c.Attempts = attempts
	c.Successes = successes
	return c
}

func TestMasteryPercentage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		attempts  int
		successes int
		expected  int
		defined   bool
	}{
		{"unattempted", 0, 0, 0, false},
		{"all correct", 3, 3, 100, true},
		{"quarter", 4, 1, 25, true},
		{"rounds half up", 8, 1, 13, true},
		{"rounds down", 3, 1, 33, true},
		{"rounds up", 3, 2, 67, true},
		{"none correct", 5, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pct, ok := MasteryPercentage(tc.attempts, tc.successes)
			assert.Equal(t, tc.defined, ok)
			assert.Equal(t, tc.expected, pct)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		card     *domain.Card
		expected Classification
	}{
		{"unattempted", card(0, 0), Unattempted},
		{"three of three is learnt", card(3, 3), Learnt},
		{"two of two is still learning", card(2, 2), Learning},
		{"one of four is learning", card(4, 1), Learning},
		{"high but not perfect", card(10, 9), Learning},
		{"perfect over many attempts", card(12, 12), Learnt},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.card))
		})
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		card     *domain.Card
		expected int
	}{
		// 0 by definition
		{"unattempted", card(0, 0), 0},
		// 25 + 40 + 20 - 50
		{"weak card gets penalty", card(4, 1), 35},
		// 100 + 30 + 60
		{"learnt card", card(3, 3), 190},
		// 50 + 20 + 20, no penalty at exactly 50
		{"threshold is exclusive", card(2, 1), 90},
		// 100 + 100 (capped) + 200 (capped)
		{"caps apply", card(20, 20), 400},
		// 0 + 10 + 0 - 50
		{"single miss goes negative", card(1, 0), -40},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Score(tc.card))
		})
	}
}

func TestClassificationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unattempted", Unattempted.String())
	assert.Equal(t, "learning", Learning.String())
	assert.Equal(t, "learnt", Learnt.String())
}
