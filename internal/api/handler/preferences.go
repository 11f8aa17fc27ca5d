package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/usecase"
)

type ToggleRequest struct {
	VideoID string `json:"videoId"`
}

type ToggleResponse struct {
	VideoID string `json:"videoId"`
	Member  bool   `json:"member"`
}

type MembersResponse struct {
	VideoIDs []string `json:"videoIds"`
}

type PreferencesOverviewResponse struct {
	Liked      []string `json:"liked"`
	WatchLater []string `json:"watchLater"`
}

// PreferenceHandler serves the liked and watch-later collections. The
// kind appears as a URL segment: /preferences/liked/... and
// /preferences/watchLater/...
type PreferenceHandler struct {
	prefs *usecase.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(prefs *usecase.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// Overview handles GET /preferences, returning both collections at once
// the way the UI hydrates on page load.
func (h *PreferenceHandler) Overview(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	liked, err := h.prefs.Members(r.Context(), profileID, model.KindLiked)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	watchLater, err := h.prefs.Members(r.Context(), profileID, model.KindWatchLater)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if liked == nil {
		liked = []string{}
	}
	if watchLater == nil {
		watchLater = []string{}
	}

	JSON(w, http.StatusOK, PreferencesOverviewResponse{Liked: liked, WatchLater: watchLater})
}

// Toggle handles POST /preferences/{kind}/toggle. The response reports
// membership after the flip so the client renders the authoritative
// state, not its own guess.
func (h *PreferenceHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	kind := model.PreferenceKind(chi.URLParam(r, "kind"))

	var req ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.VideoID == "" {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is required")
		return
	}

	member, err := h.prefs.Toggle(r.Context(), profileID, kind, req.VideoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, ToggleResponse{VideoID: req.VideoID, Member: member})
}

// Members handles GET /preferences/{kind}, returning raw video ids.
func (h *PreferenceHandler) Members(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	kind := model.PreferenceKind(chi.URLParam(r, "kind"))

	ids, err := h.prefs.Members(r.Context(), profileID, kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	JSON(w, http.StatusOK, MembersResponse{VideoIDs: ids})
}

// Resolve handles GET /preferences/{kind}/videos, returning the catalog
// records behind the stored ids in catalog order.
func (h *PreferenceHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	kind := model.PreferenceKind(chi.URLParam(r, "kind"))

	videos, err := h.prefs.ResolveVideos(r.Context(), profileID, kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoListResponse{Videos: videos})
}
