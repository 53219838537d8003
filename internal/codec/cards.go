package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CurrentCardSchema is the schema written by EncodeCards.
const CurrentCardSchema = 5

// cardEnvelope is the current top-level card record.
type cardEnvelope struct {
	Schema int          `json:"schema"`
	Cards  []cardRecord `json:"cards"`
}

// cardRecord is the current per-card shape.
type cardRecord struct {
	ID          uuid.UUID          `json:"id"`
	Term        string             `json:"term"`
	Meaning     string             `json:"meaning"`
	Example     string             `json:"example"`
	Annotations domain.Annotations `json:"annotations"`
	DeckIDs     []uuid.UUID        `json:"deckIds"`
	Attempts    int                `json:"attempts"`
	Successes   int                `json:"successes"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// EncodeCards serializes cards in the current schema.
func EncodeCards(cards []*domain.Card) ([]byte, error) {
	env := cardEnvelope{
		Schema: CurrentCardSchema,
		Cards:  make([]cardRecord, 0, len(cards)),
	}
	for _, c := range cards {
		if c == nil {
			return nil, fmt.Errorf("codec: nil card at index %d", len(env.Cards))
		}
		deckIDs := c.DeckIDs
		if deckIDs == nil {
			deckIDs = []uuid.UUID{}
		}
		env.Cards = append(env.Cards, cardRecord{
			ID:          c.ID,
			Term:        c.Term,
			Meaning:     c.Meaning,
			Example:     c.Example,
			Annotations: c.Annotations,
			DeckIDs:     deckIDs,
			Attempts:    c.Attempts,
			Successes:   c.Successes,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("codec: encode cards: %w", err)
	}
	return data, nil
}

// DecodeCards decodes a card record written by any known schema.
// It returns ErrNoData for an empty payload and ErrUndecodable when every
// schema rejects it.
func DecodeCards(data []byte) (Decoded[*domain.Card], error) {
	return runChain(data, cardChain, CurrentCardSchema)
}

// cardChain lists card schemas from newest to oldest.
var cardChain = []schema[*domain.Card]{
	{version: 5, decode: decodeCardsV5},
	{version: 4, decode: decodeLegacy[cardV4]("id", "word", "deckIds")},
	{version: 3, decode: decodeLegacy[cardV3]("id", "word", "deckId")},
	{version: 2, decode: decodeLegacy[cardV2]("id", "word", "timesShown")},
	{version: 1, decode: decodeLegacy[cardV1]("id", "word")},
}

func decodeCardsV5(data []byte) ([]*domain.Card, error) {
	var env cardEnvelope
	if err := strictUnmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Schema != CurrentCardSchema {
		return nil, fmt.Errorf("unexpected schema %d", env.Schema)
	}
	if env.Cards == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, "cards")
	}

	cards := make([]*domain.Card, 0, len(env.Cards))
	for _, r := range env.Cards {
		c := &domain.Card{
			ID:          r.ID,
			Term:        r.Term,
			Meaning:     r.Meaning,
			Example:     r.Example,
			Annotations: r.Annotations,
			Attempts:    r.Attempts,
			Successes:   r.Successes,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
		for _, id := range r.DeckIDs {
			c.AddDeck(id)
		}
		c.NormalizeCounters()
		cards = append(cards, c)
	}
	return cards, nil
}

// legacyCard is implemented by every historical card shape.
type legacyCard interface {
	toCard() *domain.Card
}

// decodeLegacy builds a decoder for a bare JSON array of legacy cards.
// Keys the shape does not know are skipped; schemas are told apart by the
// required keys alone.
func decodeLegacy[T legacyCard](required ...string) func([]byte) ([]*domain.Card, error) {
	return func(data []byte) ([]*domain.Card, error) {
		var records []T
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
		if err := requireKeys(data, required...); err != nil {
			return nil, err
		}
		cards := make([]*domain.Card, 0, len(records))
		for _, r := range records {
			c := r.toCard()
			c.NormalizeCounters()
			cards = append(cards, c)
		}
		return cards, nil
	}
}
