package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
)

// AdminService wraps the catalog's authenticated write surface. The
// bearer token from a successful login is kept in the preference store
// under the profile, so an admin session travels with the viewer
// session. A rejected token is discarded so the next call fails fast at
// the login step instead of the upstream.
type AdminService struct {
	catalog repository.Catalog
	prefs   repository.PreferenceStore
	logos   repository.LogoStorage
}

// NewAdminService creates a new AdminService. logos may be nil when no
// object storage is configured; UploadLogo then reports
// ErrLogoStorageDisabled.
func NewAdminService(catalog repository.Catalog, prefs repository.PreferenceStore, logos repository.LogoStorage) *AdminService {
	return &AdminService{
		catalog: catalog,
		prefs:   prefs,
		logos:   logos,
	}
}

// Login exchanges the password for a bearer token and stores it for the
// profile.
func (s *AdminService) Login(ctx context.Context, profileID, password string) error {
	token, err := s.catalog.Login(ctx, password)
	if err != nil {
		return err
	}
	if err := s.prefs.SetScalar(ctx, profileID, model.KeyAdminToken, token); err != nil {
		return fmt.Errorf("store admin token: %w", err)
	}
	return nil
}

// Logout drops the stored token. Logging out while not logged in is a
// no-op.
func (s *AdminService) Logout(ctx context.Context, profileID string) error {
	return s.prefs.DeleteScalar(ctx, profileID, model.KeyAdminToken)
}

// LoggedIn reports whether the profile holds a token. The token is not
// validated against the upstream; a stale one surfaces as
// ErrUnauthorized on the next write.
func (s *AdminService) LoggedIn(ctx context.Context, profileID string) (bool, error) {
	_, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyAdminToken)
	return ok, err
}

// UpdateSettings applies a partial branding update.
func (s *AdminService) UpdateSettings(ctx context.Context, profileID string, update model.SettingsUpdate) (*model.ThemeSettings, error) {
	var settings *model.ThemeSettings
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		settings, callErr = s.catalog.UpdateSettings(ctx, token, update)
		return callErr
	})
	return settings, err
}

// CreateVideo adds a video to the catalog.
func (s *AdminService) CreateVideo(ctx context.Context, profileID string, input model.VideoInput) (*model.Video, error) {
	var video *model.Video
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		video, callErr = s.catalog.CreateVideo(ctx, token, input)
		return callErr
	})
	return video, err
}

// UpdateVideo applies a partial video update.
func (s *AdminService) UpdateVideo(ctx context.Context, profileID, id string, update model.VideoUpdate) (*model.Video, error) {
	var video *model.Video
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		video, callErr = s.catalog.UpdateVideo(ctx, token, id, update)
		return callErr
	})
	return video, err
}

// DeleteVideo removes a video from the catalog.
func (s *AdminService) DeleteVideo(ctx context.Context, profileID, id string) error {
	return s.do(ctx, profileID, func(token string) error {
		return s.catalog.DeleteVideo(ctx, token, id)
	})
}

// CreateCategory adds a category.
func (s *AdminService) CreateCategory(ctx context.Context, profileID string, input model.CategoryInput) (*model.Category, error) {
	var category *model.Category
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		category, callErr = s.catalog.CreateCategory(ctx, token, input)
		return callErr
	})
	return category, err
}

// UpdateCategory renames a category.
func (s *AdminService) UpdateCategory(ctx context.Context, profileID, id string, input model.CategoryInput) (*model.Category, error) {
	var category *model.Category
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		category, callErr = s.catalog.UpdateCategory(ctx, token, id, input)
		return callErr
	})
	return category, err
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, profileID, id string) error {
	return s.do(ctx, profileID, func(token string) error {
		return s.catalog.DeleteCategory(ctx, token, id)
	})
}

// UpdatePage rewrites a static page's content.
func (s *AdminService) UpdatePage(ctx context.Context, profileID, slug string, update model.PageUpdate) (*model.Page, error) {
	var page *model.Page
	err := s.do(ctx, profileID, func(token string) error {
		var callErr error
		page, callErr = s.catalog.UpdatePage(ctx, token, slug, update)
		return callErr
	})
	return page, err
}

// UploadLogo stores the image in object storage and points the site
// settings at its public URL. The upload name keeps the original
// extension so the bucket serves the right content type.
func (s *AdminService) UploadLogo(ctx context.Context, profileID, filename string, reader io.Reader, size int64, contentType string) (*model.ThemeSettings, error) {
	if s.logos == nil {
		return nil, ErrLogoStorageDisabled
	}

	name := "logo-" + uuid.NewString() + path.Ext(filename)
	logoURL, err := s.logos.UploadLogo(ctx, name, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	return s.UpdateSettings(ctx, profileID, model.SettingsUpdate{Logo: &logoURL})
}

// do runs one authenticated catalog call, supplying the stored token. No
// token means the caller never logged in. When the upstream rejects the
// token it is dropped, so the failure is not repeated on every call.
func (s *AdminService) do(ctx context.Context, profileID string, call func(token string) error) error {
	token, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyAdminToken)
	if err != nil {
		return fmt.Errorf("read admin token: %w", err)
	}
	if !ok {
		return repository.ErrUnauthorized
	}

	if err := call(token); err != nil {
		if errors.Is(err, repository.ErrUnauthorized) {
			_ = s.prefs.DeleteScalar(ctx, profileID, model.KeyAdminToken)
		}
		return err
	}
	return nil
}
