package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/i18n"
	"github.com/shindora/nesubtv/internal/infrastructure/catalog"
	"github.com/shindora/nesubtv/internal/infrastructure/prefstore"
	"github.com/shindora/nesubtv/internal/usecase"
)

// fakeCatalog is an httptest stand-in for the upstream catalog backend.
type fakeCatalog struct {
	videos   []model.Video
	settings model.ThemeSettings
	password string
	token    string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		videos: []model.Video{
			{ID: "v1", Title: "First"},
			{ID: "v2", Title: "Second"},
			{ID: "v3", Title: "Third"},
			{ID: "v4", Title: "Fourth"},
		},
		settings: model.DefaultThemeSettings(),
		password: "hunter2",
		token:    "tok-123",
	}
}

func (f *fakeCatalog) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /videos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.videos)
	})
	mux.HandleFunc("GET /videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, v := range f.videos {
			if v.ID == r.PathValue("id") {
				_ = json.NewEncoder(w).Encode(v)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /trending", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.videos)
	})
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		matches := []model.Video{}
		for _, v := range f.videos {
			if strings.Contains(strings.ToLower(v.Title), q) {
				matches = append(matches, v)
			}
		}
		_ = json.NewEncoder(w).Encode(matches)
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Category{{ID: "c1", Name: "Action", Slug: "action"}})
	})
	mux.HandleFunc("GET /pages/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("slug") != "about" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(model.Page{Slug: "about", Title: "About", Content: "Hi"})
	})
	mux.HandleFunc("GET /settings", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.settings)
	})
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != f.password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token})
	})
	mux.HandleFunc("DELETE /videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		for i, v := range f.videos {
			if v.ID == r.PathValue("id") {
				f.videos = append(f.videos[:i], f.videos[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestRouter wires real services over the fake catalog and a
// file-backed preference store. Requests carry a fixed profile id.
func newTestRouter(t *testing.T, f *fakeCatalog) http.Handler {
	t.Helper()

	srv := f.server(t)
	client := catalog.NewClient(srv.URL)
	prefs := prefstore.NewFileStore(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	playbackSvc := usecase.NewPlaybackService(client, prefs, usecase.DefaultPlaybackServiceConfig())
	preferenceSvc := usecase.NewPreferenceService(client, prefs)
	settingsSvc := usecase.NewSettingsService(client, prefs, i18n.New(), logger)
	adminSvc := usecase.NewAdminService(client, prefs, nil)

	autoplay := NewAutoplayHandler(playbackSvc)
	catalogHandler := NewCatalogHandler(client)
	preferences := NewPreferenceHandler(preferenceSvc)
	settings := NewSettingsHandler(settingsSvc)
	admin := NewAdminHandler(adminSvc)

	r := chi.NewRouter()
	r.Use(fixedProfile("test-profile"))

	r.Route("/autoplay", func(r chi.Router) {
		r.Get("/", autoplay.Load)
		r.Get("/queue", autoplay.Queue)
		r.Post("/next", autoplay.Next)
		r.Post("/previous", autoplay.Previous)
		r.Post("/jump", autoplay.Jump)
		r.Get("/setting", autoplay.GetSetting)
		r.Put("/setting", autoplay.SetSetting)
	})
	r.Get("/videos", catalogHandler.ListVideos)
	r.Get("/videos/{id}", catalogHandler.GetVideo)
	r.Get("/categories", catalogHandler.ListCategories)
	r.Get("/trending", catalogHandler.ListTrending)
	r.Get("/search", catalogHandler.Search)
	r.Get("/pages/{slug}", catalogHandler.GetPage)
	r.Get("/preferences", preferences.Overview)
	r.Route("/preferences/{kind}", func(r chi.Router) {
		r.Get("/", preferences.Members)
		r.Post("/toggle", preferences.Toggle)
		r.Get("/videos", preferences.Resolve)
	})
	r.Get("/theme", settings.GetTheme)
	r.Put("/theme", settings.SetTheme)
	r.Post("/theme/toggle", settings.ToggleTheme)
	r.Get("/locale", settings.GetLocale)
	r.Put("/locale", settings.SetLanguage)
	r.Post("/locale/toggle", settings.ToggleLanguage)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", admin.Login)
		r.Post("/logout", admin.Logout)
		r.Get("/session", admin.Session)
		r.Post("/settings/logo", admin.UploadLogo)
		r.Delete("/videos/{id}", admin.DeleteVideo)
	})

	return r
}

// newDeadCatalogRouter wires the handlers against a catalog server that
// has already been shut down, for outage behavior tests.
func newDeadCatalogRouter(t *testing.T) http.Handler {
	t.Helper()

	f := newFakeCatalog()
	srv := f.server(t)
	url := srv.URL
	srv.Close()

	client := catalog.NewClient(url)
	prefs := prefstore.NewFileStore(t.TempDir())
	playbackSvc := usecase.NewPlaybackService(client, prefs, usecase.DefaultPlaybackServiceConfig())
	autoplay := NewAutoplayHandler(playbackSvc)
	catalogHandler := NewCatalogHandler(client)

	r := chi.NewRouter()
	r.Use(fixedProfile("test-profile"))
	r.Get("/autoplay", autoplay.Load)
	r.Get("/videos", catalogHandler.ListVideos)
	return r
}

func fixedProfile(profileID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.ProfileIDKey, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func doRequest(t *testing.T, router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
