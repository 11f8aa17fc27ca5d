package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shindora/nesubtv/internal/api/handler"
	"github.com/shindora/nesubtv/internal/api/middleware"
	"github.com/shindora/nesubtv/internal/config"
	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/i18n"
	"github.com/shindora/nesubtv/internal/infrastructure/catalog"
	"github.com/shindora/nesubtv/internal/infrastructure/prefstore"
	"github.com/shindora/nesubtv/internal/infrastructure/storage"
	"github.com/shindora/nesubtv/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	prefs, closePrefs, err := buildPrefStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePrefs()

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
	)

	var logos repository.LogoStorage
	if cfg.MinIO.Enabled {
		storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
			Endpoint:      cfg.MinIO.Endpoint,
			PublicBaseURL: cfg.MinIO.PublicBaseURL,
			AccessKey:     cfg.MinIO.AccessKey,
			SecretKey:     cfg.MinIO.SecretKey,
			Bucket:        cfg.MinIO.Bucket,
			UseSSL:        cfg.MinIO.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to MinIO: %w", err)
		}
		logos = storageClient
		logger.Info("connected to MinIO", slog.String("bucket", cfg.MinIO.Bucket))
	}

	playbackSvc := usecase.NewPlaybackService(catalogClient, prefs, usecase.PlaybackServiceConfig{
		ListLimit:   cfg.Catalog.ListLimit,
		UpNextCount: cfg.Catalog.UpNextCount,
	})
	preferenceSvc := usecase.NewPreferenceService(catalogClient, prefs)
	settingsSvc := usecase.NewSettingsService(catalogClient, prefs, i18n.New(), logger)
	adminSvc := usecase.NewAdminService(catalogClient, prefs, logos)

	r := setupRouter(logger, cfg.Session, routerHandlers{
		autoplay:    handler.NewAutoplayHandler(playbackSvc),
		catalog:     handler.NewCatalogHandler(catalogClient),
		preferences: handler.NewPreferenceHandler(preferenceSvc),
		settings:    handler.NewSettingsHandler(settingsSvc),
		admin:       handler.NewAdminHandler(adminSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("prefs_backend", cfg.Prefs.Backend),
			slog.String("catalog", cfg.Catalog.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildPrefStore constructs the configured preference backend. The
// returned close func releases whatever connections the backend holds.
func buildPrefStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.PreferenceStore, func(), error) {
	switch cfg.Prefs.Backend {
	case "file":
		return prefstore.NewFileStore(cfg.Prefs.Dir), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", slog.String("addr", cfg.Redis.Addr()))
		return prefstore.NewRedisStore(client), func() { _ = client.Close() }, nil

	case "postgres":
		if err := prefstore.Migrate(cfg.Database.DSN()); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		pool, err := prefstore.NewPool(ctx, prefstore.DefaultPoolConfig(cfg.Database.DSN()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info("connected to PostgreSQL")
		return prefstore.NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown prefs backend %q", cfg.Prefs.Backend)
	}
}

type routerHandlers struct {
	autoplay    *handler.AutoplayHandler
	catalog     *handler.CatalogHandler
	preferences *handler.PreferenceHandler
	settings    *handler.SettingsHandler
	admin       *handler.AdminHandler
}

func setupRouter(logger *slog.Logger, session config.SessionConfig, h routerHandlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Session(middleware.SessionConfig{
		Secret:     session.Secret,
		CookieName: session.CookieName,
		TTL:        session.TTL,
		Secure:     session.Secure,
	}))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/autoplay", func(r chi.Router) {
			r.Get("/", h.autoplay.Load)
			r.Get("/queue", h.autoplay.Queue)
			r.Post("/next", h.autoplay.Next)
			r.Post("/previous", h.autoplay.Previous)
			r.Post("/jump", h.autoplay.Jump)
			r.Get("/setting", h.autoplay.GetSetting)
			r.Put("/setting", h.autoplay.SetSetting)
		})

		r.Get("/videos", h.catalog.ListVideos)
		r.Get("/videos/{id}", h.catalog.GetVideo)
		r.Get("/categories", h.catalog.ListCategories)
		r.Get("/trending", h.catalog.ListTrending)
		r.Get("/search", h.catalog.Search)
		r.Get("/pages/{slug}", h.catalog.GetPage)

		r.Get("/preferences", h.preferences.Overview)
		r.Route("/preferences/{kind}", func(r chi.Router) {
			r.Get("/", h.preferences.Members)
			r.Post("/toggle", h.preferences.Toggle)
			r.Get("/videos", h.preferences.Resolve)
		})

		r.Get("/theme", h.settings.GetTheme)
		r.Put("/theme", h.settings.SetTheme)
		r.Post("/theme/toggle", h.settings.ToggleTheme)
		r.Get("/locale", h.settings.GetLocale)
		r.Put("/locale", h.settings.SetLanguage)
		r.Post("/locale/toggle", h.settings.ToggleLanguage)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.admin.Login)
			r.Post("/logout", h.admin.Logout)
			r.Get("/session", h.admin.Session)
			r.Put("/settings", h.admin.UpdateSettings)
			r.Post("/settings/logo", h.admin.UploadLogo)
			r.Post("/videos", h.admin.CreateVideo)
			r.Put("/videos/{id}", h.admin.UpdateVideo)
			r.Delete("/videos/{id}", h.admin.DeleteVideo)
			r.Post("/categories", h.admin.CreateCategory)
			r.Put("/categories/{id}", h.admin.UpdateCategory)
			r.Delete("/categories/{id}", h.admin.DeleteCategory)
			r.Put("/pages/{slug}", h.admin.UpdatePage)
		})
	})

	return r
}
