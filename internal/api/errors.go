package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/transfer"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	// System decks are owned by the statistics engine
	case errors.Is(err, domain.ErrProtectedDeck):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrDuplicateDeckName):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, transfer.ErrEmptyImport):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrLoadFailed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-friendly message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, domain.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, domain.ErrProtectedDeck):
		return "System decks cannot be modified"
	case errors.Is(err, domain.ErrDuplicateDeckName):
		return "A deck with this name already exists"
	case errors.Is(err, domain.ErrEmptyDeckName):
		return "Deck name cannot be empty"
	case errors.Is(err, domain.ErrSameDeckName):
		return "Deck already has this name"
	case errors.Is(err, domain.ErrNestingTooDeep):
		return "Sub-decks cannot contain sub-decks"
	case errors.Is(err, transfer.ErrEmptyImport):
		return "The file contains no rows to import"
	case errors.As(err, &vErr):
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	case errors.Is(err, service.ErrPersistFailed):
		return "The change was applied but could not be saved"
	case errors.Is(err, service.ErrLoadFailed):
		return "The library could not be loaded"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}
	fe := vErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "dive", "uuid":
		return "invalid id"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. A non-empty
// defaultMsg replaces the generic message of unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" && !errors.Is(err, service.ErrPersistFailed) {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
