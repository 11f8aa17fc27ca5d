package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
)

type VideoListResponse struct {
	Videos []model.Video `json:"videos"`
}

type CategoryListResponse struct {
	Categories []model.Category `json:"categories"`
}

// CatalogHandler passes browse and search requests through to the
// upstream catalog. No caching: every response reflects the upstream at
// request time.
type CatalogHandler struct {
	catalog repository.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog repository.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListVideos handles GET /videos?category={name}&limit={n}
func (h *CatalogHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	filter := repository.VideoFilter{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			Error(w, http.StatusBadRequest, "invalid_limit", "Limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	videos, err := h.catalog.ListVideos(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoListResponse{Videos: videos})
}

// GetVideo handles GET /videos/{id}
func (h *CatalogHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.catalog.GetVideo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, video)
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, CategoryListResponse{Categories: categories})
}

// ListTrending handles GET /trending
func (h *CatalogHandler) ListTrending(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalog.ListTrending(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoListResponse{Videos: videos})
}

// Search handles GET /search?q={query}
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		Error(w, http.StatusBadRequest, "invalid_query", "Search query is required")
		return
	}

	videos, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoListResponse{Videos: videos})
}

// GetPage handles GET /pages/{slug}
func (h *CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.GetPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, page)
}
