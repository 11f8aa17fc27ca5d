package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/usecase"
)

// maxLogoSize caps logo uploads at 5 MiB.
const maxLogoSize = 5 << 20

type LoginRequest struct {
	Password string `json:"password"`
}

type AdminSessionResponse struct {
	LoggedIn bool `json:"loggedIn"`
}

// AdminHandler exposes the catalog's write surface. All operations except
// Login and Session require a prior login on the same profile.
type AdminHandler struct {
	admin *usecase.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *usecase.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		Error(w, http.StatusBadRequest, "invalid_password", "Password is required")
		return
	}

	if err := h.admin.Login(r.Context(), profileID, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AdminSessionResponse{LoggedIn: true})
}

// Logout handles POST /admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	if err := h.admin.Logout(r.Context(), profileID); err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AdminSessionResponse{LoggedIn: false})
}

// Session handles GET /admin/session.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	loggedIn, err := h.admin.LoggedIn(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AdminSessionResponse{LoggedIn: loggedIn})
}

// UpdateSettings handles PUT /admin/settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.SettingsUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.admin.UpdateSettings(r.Context(), profileID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, settings)
}

// UploadLogo handles POST /admin/settings/logo with a multipart "logo"
// field. The stored settings come back with the new logo URL applied.
func (h *AdminHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize)
	file, header, err := r.FormFile("logo")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_upload", "A logo file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	settings, err := h.admin.UploadLogo(r.Context(), profileID, header.Filename, file, header.Size, contentType)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, settings)
}

// CreateVideo handles POST /admin/videos.
func (h *AdminHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.VideoInput
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		Error(w, http.StatusBadRequest, "invalid_title", "Title is required")
		return
	}
	if req.EmbedURL == "" {
		Error(w, http.StatusBadRequest, "invalid_embed_url", "Embed URL is required")
		return
	}

	video, err := h.admin.CreateVideo(r.Context(), profileID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, video)
}

// UpdateVideo handles PUT /admin/videos/{id}.
func (h *AdminHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.VideoUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	video, err := h.admin.UpdateVideo(r.Context(), profileID, chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, video)
}

// DeleteVideo handles DELETE /admin/videos/{id}.
func (h *AdminHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	if err := h.admin.DeleteVideo(r.Context(), profileID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory handles POST /admin/categories.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.CategoryInput
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		Error(w, http.StatusBadRequest, "invalid_name", "Category name is required")
		return
	}

	category, err := h.admin.CreateCategory(r.Context(), profileID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/{id}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.CategoryInput
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		Error(w, http.StatusBadRequest, "invalid_name", "Category name is required")
		return
	}

	category, err := h.admin.UpdateCategory(r.Context(), profileID, chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/{id}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	if err := h.admin.DeleteCategory(r.Context(), profileID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePage handles PUT /admin/pages/{slug}.
func (h *AdminHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var req model.PageUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := h.admin.UpdatePage(r.Context(), profileID, chi.URLParam(r, "slug"), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, page)
}
