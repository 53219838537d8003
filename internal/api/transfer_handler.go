package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MaxImportBytes caps the size of an uploaded CSV file.
const MaxImportBytes = 10 << 20

// TransferService is the part of the library the CSV endpoints use.
type TransferService interface {
	ImportCSV(ctx context.Context, text string, opts service.ImportOptions) (*service.ImportResult, error)
	ExportCSV(deckID *uuid.UUID) (string, error)
}

// TransferHandler serves CSV import and export.
type TransferHandler struct {
	transfer TransferService
	logger   *slog.Logger
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transfer TransferService, logger *slog.Logger) *TransferHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TransferHandler")
	}
	return &TransferHandler{
		transfer: transfer,
		logger:   logger.With(slog.String("component", "transfer_handler")),
	}
}

// Import handles POST /import. The request body is the CSV text; the
// optional deck query parameter names the deck receiving rows without decks.
// Rejected rows are reported in the response, not as a failure.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, err := getOptionalQueryUUID(r, "deck")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxImportBytes+1))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	if len(body) > MaxImportBytes {
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Import file exceeds %d bytes", MaxImportBytes))
		return
	}

	result, err := h.transfer.ImportCSV(r.Context(), string(body), service.ImportOptions{TargetDeckID: deckID})
	if err != nil {
		if result != nil && errors.Is(err, service.ErrPersistFailed) {
			log.Error("import applied but not saved",
				slog.Int("imported", result.Imported),
				slog.Int("rejected", len(result.Errors)))
		}
		HandleAPIError(w, r, err, "Failed to import cards")
		return
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	created := result.CreatedDecks
	if created == nil {
		created = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{
		Imported:     result.Imported,
		Errors:       errs,
		CreatedDecks: created,
	})
}

// Export handles GET /export, optionally scoped with ?deck=<id>.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	deckID, err := getOptionalQueryUUID(r, "deck")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.export(w, r, deckID)
}

// ExportDeck handles GET /decks/{id}/export
func (h *TransferHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	h.export(w, r, &id)
}

func (h *TransferHandler) export(w http.ResponseWriter, r *http.Request, deckID *uuid.UUID) {
	text, err := h.transfer.ExportCSV(deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export cards")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="flashdeck.csv"`)
	shared.RespondWithText(w, r, http.StatusOK, "text/csv; charset=utf-8", text)
}
