package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := SaveFailedPayload{
		Operation: "create_card",
		Keys:      []string{"cards", "decks"},
		Error:     "disk full",
	}

	before := time.Now().UTC()
	event, err := NewEvent(TypeSaveFailed, payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeSaveFailed, event.Type)
	assert.False(t, event.CreatedAt.Before(before))

	var decoded SaveFailedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEventUnmarshalablePayload(t *testing.T) {
	_, err := NewEvent(TypeSaved, make(chan int))
	assert.Error(t, err)
}

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	var h EventHandler = HandlerFunc(func(ctx context.Context, e *Event) error {
		got = e
		return errors.New("nope")
	})

	event, err := NewEvent(TypeLoaded, LoadedPayload{Cards: 2, Decks: 3})
	require.NoError(t, err)

	assert.EqualError(t, h.HandleEvent(context.Background(), event), "nope")
	assert.Same(t, event, got)
}
