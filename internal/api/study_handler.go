package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// StudyService is the part of the library the study endpoints use.
type StudyService interface {
	RecordShown(ctx context.Context, cardID uuid.UUID, wasCorrect bool) (*domain.Card, learning.Classification, error)
	ResetStatistics(ctx context.Context) (int, error)
	StudyOrder(ids []uuid.UUID) []*domain.Card
	StudyDeck(deckID uuid.UUID) ([]*domain.Card, error)
	Summary(deckID *uuid.UUID) (learning.Summary, error)
}

// StudyHandler serves study ordering and learning statistics.
type StudyHandler struct {
	study  StudyService
	logger *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(study StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}
	return &StudyHandler{
		study:  study,
		logger: logger.With(slog.String("component", "study_handler")),
	}
}

// StudyOrder handles GET /study. The optional ids query parameter limits the
// session to the listed cards.
func (h *StudyHandler) StudyOrder(w http.ResponseWriter, r *http.Request) {
	ids, err := getQueryUUIDs(r, "ids")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(h.study.StudyOrder(ids)))
}

// StudyDeck handles GET /decks/{id}/study
func (h *StudyHandler) StudyDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	cards, err := h.study.StudyDeck(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// RecordAttempt handles POST /cards/{id}/attempts
func (h *StudyHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	var req AttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, cls, err := h.study.RecordShown(r.Context(), id, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record attempt")
		return
	}

	log.Debug("attempt recorded",
		slog.String("card_id", id.String()),
		slog.Bool("correct", *req.Correct),
		slog.String("classification", cls.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, AttemptResponse{
		Card:           cardToResponse(card),
		Classification: cls.String(),
	})
}

// ResetStatistics handles POST /study/reset
func (h *StudyHandler) ResetStatistics(w http.ResponseWriter, r *http.Request) {
	n, err := h.study.ResetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: n})
}

// Summary handles GET /summary, optionally scoped with ?deck=<id>.
func (h *StudyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	deckID, err := getOptionalQueryUUID(r, "deck")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	summary, err := h.study.Summary(deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse(summary))
}
