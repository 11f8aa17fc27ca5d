package repository

import (
	"context"

	"github.com/shindora/nesubtv/internal/domain/model"
)

// VideoFilter narrows a catalog listing. A zero Limit means the upstream
// default (50).
type VideoFilter struct {
	Category string
	Limit    int
}

// Catalog is the typed accessor for the upstream video-catalog backend.
// Every call is a single network round-trip with no retry and no caching;
// each result reflects the backend state at call time.
type Catalog interface {
	// ListVideos retrieves videos, optionally filtered by category name.
	ListVideos(ctx context.Context, filter VideoFilter) ([]model.Video, error)

	// GetVideo retrieves one video. Returns ErrVideoNotFound on a miss.
	GetVideo(ctx context.Context, id string) (*model.Video, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// ListTrending retrieves the trending list, most viewed first.
	ListTrending(ctx context.Context) ([]model.Video, error)

	// Search retrieves videos matching the query.
	Search(ctx context.Context, query string) ([]model.Video, error)

	// GetPage retrieves a static page. Returns ErrPageNotFound on a miss.
	GetPage(ctx context.Context, slug string) (*model.Page, error)

	// GetSettings retrieves the authoritative theme settings.
	GetSettings(ctx context.Context) (*model.ThemeSettings, error)

	// Login exchanges the admin password for a bearer token.
	// Returns ErrUnauthorized on a bad password.
	Login(ctx context.Context, password string) (string, error)

	// Bearer-authenticated write accessors. All return ErrUnauthorized
	// when the token is rejected.
	UpdateSettings(ctx context.Context, token string, update model.SettingsUpdate) (*model.ThemeSettings, error)
	CreateVideo(ctx context.Context, token string, input model.VideoInput) (*model.Video, error)
	UpdateVideo(ctx context.Context, token, id string, update model.VideoUpdate) (*model.Video, error)
	DeleteVideo(ctx context.Context, token, id string) error
	CreateCategory(ctx context.Context, token string, input model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, token, id string, input model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
	UpdatePage(ctx context.Context, token, slug string, update model.PageUpdate) (*model.Page, error)
}
