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

// CardService is the part of the library the card endpoints use.
type CardService interface {
	CreateCard(ctx context.Context, fields domain.CardFields, deckIDs []uuid.UUID) (*domain.Card, error)
	UpdateCard(ctx context.Context, id uuid.UUID, fields domain.CardFields, deckIDs []uuid.UUID) (*domain.Card, error)
	DeleteCards(ctx context.Context, ids []uuid.UUID) (int, error)
	AssignCardToDeck(ctx context.Context, cardID, deckID uuid.UUID) (*domain.Card, error)
	RemoveCardFromDeck(ctx context.Context, cardID, deckID uuid.UUID) (*domain.Card, error)
	Cards() []*domain.Card
	Card(id uuid.UUID) (*domain.Card, error)
}

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards  CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}
	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(h.cards.Cards()))
}

// GetCard handles GET /cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	card, err := h.cards.Card(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// CreateCard handles POST /cards. Without deck_ids the card is listed under
// Uncategorized.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), req.Fields(), req.DeckIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// EditCard handles PUT /cards/{id}. The request replaces the card's fields
// and its user deck membership.
func (h *CardHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), id, req.Fields(), req.DeckIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}

	n, err := h.cards.DeleteCards(r.Context(), []uuid.UUID{id})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	if n == 0 {
		HandleAPIError(w, r, domain.ErrCardNotFound, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCards handles DELETE /cards with a list of ids. Unknown ids are
// ignored; the response counts the cards actually removed.
func (h *CardHandler) DeleteCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeleteCardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	n, err := h.cards.DeleteCards(r.Context(), req.IDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete cards")
		return
	}

	log.Debug("cards deleted",
		slog.Int("requested", len(req.IDs)),
		slog.Int("deleted", n))
	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: n})
}

// AssignDeck handles PUT /cards/{id}/decks/{deckID}
func (h *CardHandler) AssignDeck(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.cards.AssignCardToDeck, "Failed to assign card to deck")
}

// RemoveDeck handles DELETE /cards/{id}/decks/{deckID}
func (h *CardHandler) RemoveDeck(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.cards.RemoveCardFromDeck, "Failed to remove card from deck")
}

func (h *CardHandler) changeMembership(
	w http.ResponseWriter,
	r *http.Request,
	change func(ctx context.Context, cardID, deckID uuid.UUID) (*domain.Card, error),
	failMsg string,
) {
	cardID, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	deckID, ok := pathUUIDOrError(w, r, "deckID")
	if !ok {
		return
	}

	card, err := change(r.Context(), cardID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, failMsg)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}
