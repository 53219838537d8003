package store

import "context"

// Well-known record keys.
const (
	KeyCards      = "cards"
	KeyDecks      = "decks"
	KeyCardStatus = "card_status"
)

// Record is one keyed payload.
type Record struct {
	Key     string
	Payload []byte
}

// Gateway persists opaque payloads under string keys.
//
// Load returns ErrNotFound (possibly wrapped) when nothing was ever saved
// under the key. Save replaces any previous payload. SaveAll writes every
// record or none of them.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	SaveAll(ctx context.Context, records ...Record) error
}
