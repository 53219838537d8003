package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the library.
const (
	TypeLoaded     = "library.loaded"
	TypeSaved      = "library.saved"
	TypeSaveFailed = "library.save_failed"
)

// Event is a notification about the library's persisted state.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// LoadedPayload describes a completed load.
type LoadedPayload struct {
	Cards int `json:"cards"`
	Decks int `json:"decks"`
	// Upgraded is true when legacy or reconciled data was written back.
	Upgraded bool `json:"upgraded"`
}

// SavedPayload lists the record keys written by a save.
type SavedPayload struct {
	Operation string   `json:"operation"`
	Keys      []string `json:"keys"`
}

// SaveFailedPayload describes a save that did not reach the gateway. The
// in-memory change it belonged to has already been applied.
type SaveFailedPayload struct {
	Operation string   `json:"operation"`
	Keys      []string `json:"keys"`
	Error     string   `json:"error"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
