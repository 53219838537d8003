package transfer

import (
	"strconv"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
)

// DeckNamer resolves the user deck names a card belongs to.
type DeckNamer interface {
	UserDeckNames(card *domain.Card) []string
}

// Export renders cards as CSV text: the header row followed by one row per
// card, each line terminated by a newline.
func Export(cards []*domain.Card, namer DeckNamer) string {
	var b strings.Builder
	b.WriteString(JoinFields(Header))
	b.WriteByte('\n')
	for _, c := range cards {
		b.WriteString(JoinFields(exportRow(c, namer)))
		b.WriteByte('\n')
	}
	return b.String()
}

func exportRow(c *domain.Card, namer DeckNamer) []string {
	var decks []string
	if namer != nil {
		decks = namer.UserDeckNames(c)
	}

	mastery := ""
	if pct, ok := learning.CardMastery(c); ok {
		mastery = strconv.Itoa(pct)
	}

	return []string{
		c.Term,
		c.Meaning,
		c.Example,
		c.Annotations.Article,
		c.Annotations.Plural,
		c.Annotations.PastTense,
		c.Annotations.PastParticiple,
		strings.Join(decks, DeckSeparator),
		strconv.Itoa(c.Attempts),
		strconv.Itoa(c.Successes),
		mastery,
	}
}
