package handler

import (
	"net/http"

	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/usecase"
)

type ThemeResponse struct {
	Theme  model.Theme  `json:"theme"`
	Colors model.Colors `json:"colors"`
	Logo   string       `json:"logo,omitempty"`
}

type SetThemeRequest struct {
	Theme model.Theme `json:"theme"`
}

type LocaleResponse struct {
	Language model.Language    `json:"language"`
	Messages map[string]string `json:"messages"`
}

type SetLanguageRequest struct {
	Language model.Language `json:"language"`
}

// SettingsHandler serves per-profile appearance and language.
type SettingsHandler struct {
	settings *usecase.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *usecase.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetTheme handles GET /theme. Colors and logo come from the catalog
// when reachable, otherwise from the local mirror, so this never fails
// on a catalog outage.
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	view, err := h.settings.ResolveTheme(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, ThemeResponse{
		Theme:  view.Theme,
		Colors: view.Colors,
		Logo:   view.Logo,
	})
}

// SetTheme handles PUT /theme.
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req SetThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.settings.SetTheme(r.Context(), profileID, req.Theme); err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, SetThemeRequest{Theme: req.Theme})
}

// ToggleTheme handles POST /theme/toggle.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	theme, err := h.settings.ToggleTheme(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, SetThemeRequest{Theme: theme})
}

// GetLocale handles GET /locale, returning the active language and its
// full message table.
func (h *SettingsHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	view, err := h.settings.Locale(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, LocaleResponse{
		Language: view.Language,
		Messages: view.Messages,
	})
}

// SetLanguage handles PUT /locale.
func (h *SettingsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req SetLanguageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.settings.SetLanguage(r.Context(), profileID, req.Language); err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, SetLanguageRequest{Language: req.Language})
}

// ToggleLanguage handles POST /locale/toggle.
func (h *SettingsHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	lang, err := h.settings.ToggleLanguage(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, SetLanguageRequest{Language: lang})
}
