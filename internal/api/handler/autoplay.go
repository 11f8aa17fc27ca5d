package handler

import (
	"net/http"

	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/usecase"
)

// Request/Response types

type QueueResponse struct {
	Current         *model.Video  `json:"current"`
	Index           int           `json:"index"`
	Total           int           `json:"total"`
	HasPrevious     bool          `json:"hasPrevious"`
	HasNext         bool          `json:"hasNext"`
	UpNext          []model.Video `json:"upNext"`
	AutoplayEnabled bool          `json:"autoplayEnabled"`
	CanonicalURL    string        `json:"canonicalUrl,omitempty"`
}

type NavigationResponse struct {
	Video        *model.Video `json:"video,omitempty"`
	Moved        bool         `json:"moved"`
	Boundary     string       `json:"boundary,omitempty"`
	CanonicalURL string       `json:"canonicalUrl,omitempty"`
}

type JumpRequest struct {
	VideoID string `json:"videoId"`
}

type AutoplaySettingRequest struct {
	Enabled bool `json:"enabled"`
}

type AutoplaySettingResponse struct {
	Enabled bool `json:"enabled"`
}

// AutoplayHandler serves the autoplay queue: loading it, moving through
// it, and the autoplay opt-in switch.
type AutoplayHandler struct {
	playback *usecase.PlaybackService
}

// NewAutoplayHandler creates a new AutoplayHandler.
func NewAutoplayHandler(playback *usecase.PlaybackService) *AutoplayHandler {
	return &AutoplayHandler{playback: playback}
}

// Load handles GET /autoplay?video={id}. It always fetches a fresh
// snapshot; an unknown or empty video id lands on the first video.
func (h *AutoplayHandler) Load(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	requestedID := r.URL.Query().Get("video")

	view, err := h.playback.Load(r.Context(), profileID, requestedID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toQueueResponse(view))
}

// Queue handles GET /autoplay/queue, returning the queue state without a
// reload.
func (h *AutoplayHandler) Queue(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	view, err := h.playback.View(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toQueueResponse(view))
}

// Next handles POST /autoplay/next. Hitting the end of the queue is a
// 200 with moved=false, not an error.
func (h *AutoplayHandler) Next(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	result, err := h.playback.Next(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toNavigationResponse(result))
}

// Previous handles POST /autoplay/previous.
func (h *AutoplayHandler) Previous(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	result, err := h.playback.Previous(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toNavigationResponse(result))
}

// Jump handles POST /autoplay/jump, moving straight to a chosen video.
func (h *AutoplayHandler) Jump(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req JumpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.VideoID == "" {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is required")
		return
	}

	result, err := h.playback.Jump(r.Context(), profileID, req.VideoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toNavigationResponse(result))
}

// GetSetting handles GET /autoplay/setting.
func (h *AutoplayHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	enabled, err := h.playback.Autoplay(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AutoplaySettingResponse{Enabled: enabled})
}

// SetSetting handles PUT /autoplay/setting.
func (h *AutoplayHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req AutoplaySettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.playback.SetAutoplay(r.Context(), profileID, req.Enabled); err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AutoplaySettingResponse{Enabled: req.Enabled})
}

func toQueueResponse(view *usecase.QueueView) QueueResponse {
	return QueueResponse{
		Current:         view.Current,
		Index:           view.Index,
		Total:           view.Total,
		HasPrevious:     view.HasPrevious,
		HasNext:         view.HasNext,
		UpNext:          view.UpNext,
		AutoplayEnabled: view.AutoplayEnabled,
		CanonicalURL:    view.CanonicalURL,
	}
}

func toNavigationResponse(result *usecase.NavResult) NavigationResponse {
	return NavigationResponse{
		Video:        result.Video,
		Moved:        result.Moved,
		Boundary:     result.Boundary,
		CanonicalURL: result.CanonicalURL,
	}
}
