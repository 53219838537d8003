package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CurrentDeckSchema is the schema written by EncodeDecks.
const CurrentDeckSchema = 2

type deckEnvelope struct {
	Schema int          `json:"schema"`
	Decks  []deckRecord `json:"decks"`
}

type deckRecord struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ParentID   *uuid.UUID  `json:"parentId"`
	SubDeckIDs []uuid.UUID `json:"subDeckIds"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// deckV1 predates deck hierarchy. Some builds also wrote the card id cache,
// which is ignored: membership is rebuilt from the cards.
type deckV1 struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	CardIDs []uuid.UUID `json:"cardIds,omitempty"`
}

// EncodeDecks serializes decks in the current schema.
func EncodeDecks(decks []*domain.Deck) ([]byte, error) {
	env := deckEnvelope{
		Schema: CurrentDeckSchema,
		Decks:  make([]deckRecord, 0, len(decks)),
	}
	for _, d := range decks {
		if d == nil {
			return nil, fmt.Errorf("codec: nil deck at index %d", len(env.Decks))
		}
		subs := d.SubDeckIDs
		if subs == nil {
			subs = []uuid.UUID{}
		}
		env.Decks = append(env.Decks, deckRecord{
			ID:         d.ID,
			Name:       d.Name,
			ParentID:   d.ParentID,
			SubDeckIDs: subs,
			CreatedAt:  d.CreatedAt,
		})
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("codec: encode decks: %w", err)
	}
	return data, nil
}

// DecodeDecks decodes a deck record written by any known schema.
func DecodeDecks(data []byte) (Decoded[*domain.Deck], error) {
	return runChain(data, deckChain, CurrentDeckSchema)
}

var deckChain = []schema[*domain.Deck]{
	{version: 2, decode: decodeDecksV2},
	{version: 1, decode: decodeDecksV1},
}

func decodeDecksV2(data []byte) ([]*domain.Deck, error) {
	var env deckEnvelope
	if err := strictUnmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Schema != CurrentDeckSchema {
		return nil, fmt.Errorf("unexpected schema %d", env.Schema)
	}
	if env.Decks == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, "decks")
	}

	decks := make([]*domain.Deck, 0, len(env.Decks))
	for _, r := range env.Decks {
		decks = append(decks, &domain.Deck{
			ID:         r.ID,
			Name:       r.Name,
			ParentID:   r.ParentID,
			SubDeckIDs: r.SubDeckIDs,
			CreatedAt:  r.CreatedAt,
		})
	}
	return decks, nil
}

func decodeDecksV1(data []byte) ([]*domain.Deck, error) {
	var records []deckV1
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if err := requireKeys(data, "id", "name"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	decks := make([]*domain.Deck, 0, len(records))
	for _, r := range records {
		decks = append(decks, &domain.Deck{
			ID:        r.ID,
			Name:      r.Name,
			CreatedAt: now,
		})
	}
	return decks, nil
}
