package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/usecase"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// decodeJSON reads a request body into dst, reporting the 400 itself.
// Returns false when the caller should bail out.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return false
	}
	return true
}

// handleServiceError maps domain sentinels shared across handlers to
// HTTP responses. An unreachable or failing catalog is the upstream's
// fault, not ours, hence 502.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, repository.ErrPageNotFound):
		Error(w, http.StatusNotFound, "page_not_found", "Page not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		Error(w, http.StatusNotFound, "category_not_found", "Category not found")
	case errors.Is(err, repository.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "unauthorized", "Admin authentication required")
	case errors.Is(err, usecase.ErrUnknownPreferenceKind):
		Error(w, http.StatusBadRequest, "unknown_preference_kind", "Preference kind must be liked or watchLater")
	case errors.Is(err, usecase.ErrInvalidLanguage):
		Error(w, http.StatusBadRequest, "invalid_language", "Language must be en or id")
	case errors.Is(err, usecase.ErrInvalidTheme):
		Error(w, http.StatusBadRequest, "invalid_theme", "Theme must be light or dark")
	case errors.Is(err, usecase.ErrLogoStorageDisabled):
		Error(w, http.StatusNotImplemented, "logo_storage_disabled", "No object storage is configured for logo uploads")
	case errors.Is(err, repository.ErrUpstream):
		Error(w, http.StatusBadGateway, "catalog_unavailable", "The video catalog is unreachable")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
