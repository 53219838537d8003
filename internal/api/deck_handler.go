package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// DeckService is the part of the library the deck endpoints use.
type DeckService interface {
	CreateDeck(ctx context.Context, name string, parentID *uuid.UUID) (*domain.Deck, error)
	RenameDeck(ctx context.Context, id uuid.UUID, newName string) (*domain.Deck, error)
	DeleteDeck(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	Decks() []*domain.Deck
	Deck(id uuid.UUID) (*domain.Deck, error)
	TopLevelDecks() []*domain.Deck
	SubDecks(parentID uuid.UUID) ([]*domain.Deck, error)
	HierarchicalDecks() []*domain.Deck
	CardsInDeck(deckID uuid.UUID) ([]*domain.Card, error)
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	decks  DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}
	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks. The view query parameter selects the
// listing: "flat" (default, creation order), "top" or "tree" (top-level
// decks each followed by their sub-decks).
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	var decks []*domain.Deck
	switch view := r.URL.Query().Get("view"); view {
	case "", "flat":
		decks = h.decks.Decks()
	case "top":
		decks = h.decks.TopLevelDecks()
	case "tree":
		decks = h.decks.HierarchicalDecks()
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid view: must be flat, top or tree")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decksToResponse(decks))
}

// CreateDeck handles POST /decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), req.Name, req.ParentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// GetDeck handles GET /decks/{id}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	deck, err := h.decks.Deck(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// RenameDeck handles PUT /decks/{id}
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	var req RenameDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.RenameDeck(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /decks/{id}. Sub-decks are deleted with it.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.decks.DeleteDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}

	log.Debug("deck deleted",
		slog.String("deck_id", id.String()),
		slog.Int("deleted_count", len(deleted)))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteDeckResponse{Deleted: deleted})
}

// ListSubDecks handles GET /decks/{id}/subdecks
func (h *DeckHandler) ListSubDecks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	subs, err := h.decks.SubDecks(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decksToResponse(subs))
}

// ListDeckCards handles GET /decks/{id}/cards
func (h *DeckHandler) ListDeckCards(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	cards, err := h.decks.CardsInDeck(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}
