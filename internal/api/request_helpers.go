package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}
	return id, nil
}

// getOptionalQueryUUID parses a UUID query parameter. An absent parameter
// yields nil.
func getOptionalQueryUUID(r *http.Request, paramName string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(paramName))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}
	return &id, nil
}

// getQueryUUIDs parses a comma-separated list of UUIDs.
func getQueryUUIDs(r *http.Request, paramName string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, part := range strings.Split(r.URL.Query().Get(paramName), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeAndValidate decodes the JSON body into req and validates it. On
// failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// pathUUIDOrError extracts a path UUID and writes a 400 response on failure.
func pathUUIDOrError(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}
