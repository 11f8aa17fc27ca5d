package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
)

// mockCatalog provides a configurable mock for Catalog.
type mockCatalog struct {
	listVideosFn     func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error)
	getVideoFn       func(ctx context.Context, id string) (*model.Video, error)
	listCategoriesFn func(ctx context.Context) ([]model.Category, error)
	listTrendingFn   func(ctx context.Context) ([]model.Video, error)
	searchFn         func(ctx context.Context, query string) ([]model.Video, error)
	getPageFn        func(ctx context.Context, slug string) (*model.Page, error)
	getSettingsFn    func(ctx context.Context) (*model.ThemeSettings, error)
	loginFn          func(ctx context.Context, password string) (string, error)
	updateSettingsFn func(ctx context.Context, token string, update model.SettingsUpdate) (*model.ThemeSettings, error)
	createVideoFn    func(ctx context.Context, token string, input model.VideoInput) (*model.Video, error)
	updateVideoFn    func(ctx context.Context, token, id string, update model.VideoUpdate) (*model.Video, error)
	deleteVideoFn    func(ctx context.Context, token, id string) error
	createCategoryFn func(ctx context.Context, token string, input model.CategoryInput) (*model.Category, error)
	updateCategoryFn func(ctx context.Context, token, id string, input model.CategoryInput) (*model.Category, error)
	deleteCategoryFn func(ctx context.Context, token, id string) error
	updatePageFn     func(ctx context.Context, token, slug string, update model.PageUpdate) (*model.Page, error)
}

func (m *mockCatalog) ListVideos(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockCatalog) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) ListTrending(ctx context.Context) ([]model.Video, error) {
	if m.listTrendingFn != nil {
		return m.listTrendingFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]model.Video, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

func (m *mockCatalog) GetPage(ctx context.Context, slug string) (*model.Page, error) {
	if m.getPageFn != nil {
		return m.getPageFn(ctx, slug)
	}
	return nil, repository.ErrPageNotFound
}

func (m *mockCatalog) GetSettings(ctx context.Context) (*model.ThemeSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx)
	}
	settings := model.DefaultThemeSettings()
	return &settings, nil
}

func (m *mockCatalog) Login(ctx context.Context, password string) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, password)
	}
	return "", repository.ErrUnauthorized
}

func (m *mockCatalog) UpdateSettings(ctx context.Context, token string, update model.SettingsUpdate) (*model.ThemeSettings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, token, update)
	}
	return nil, nil
}

func (m *mockCatalog) CreateVideo(ctx context.Context, token string, input model.VideoInput) (*model.Video, error) {
	if m.createVideoFn != nil {
		return m.createVideoFn(ctx, token, input)
	}
	return nil, nil
}

func (m *mockCatalog) UpdateVideo(ctx context.Context, token, id string, update model.VideoUpdate) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, token, id, update)
	}
	return nil, nil
}

func (m *mockCatalog) DeleteVideo(ctx context.Context, token, id string) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, token, id)
	}
	return nil
}

func (m *mockCatalog) CreateCategory(ctx context.Context, token string, input model.CategoryInput) (*model.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, token, input)
	}
	return nil, nil
}

func (m *mockCatalog) UpdateCategory(ctx context.Context, token, id string, input model.CategoryInput) (*model.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, token, id, input)
	}
	return nil, nil
}

func (m *mockCatalog) DeleteCategory(ctx context.Context, token, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, token, id)
	}
	return nil
}

func (m *mockCatalog) UpdatePage(ctx context.Context, token, slug string, update model.PageUpdate) (*model.Page, error) {
	if m.updatePageFn != nil {
		return m.updatePageFn(ctx, token, slug, update)
	}
	return nil, nil
}

// memPrefStore is an in-memory PreferenceStore for tests. Error hooks
// let individual cases inject failures without losing the happy-path
// storage behavior.
type memPrefStore struct {
	mu      sync.Mutex
	sets    map[string][]string
	scalars map[string]string

	getSetErr    error
	setSetErr    error
	getScalarErr error
	setScalarErr error
}

func newMemPrefStore() *memPrefStore {
	return &memPrefStore{
		sets:    make(map[string][]string),
		scalars: make(map[string]string),
	}
}

func prefKey(profileID, name string) string {
	return profileID + "/" + name
}

func (m *memPrefStore) GetSet(ctx context.Context, profileID, name string) ([]string, error) {
	if m.getSetErr != nil {
		return nil, m.getSetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.sets[prefKey(profileID, name)]
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *memPrefStore) SetSet(ctx context.Context, profileID, name string, members []string) error {
	if m.setSetErr != nil {
		return m.setSetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]string, len(members))
	copy(stored, members)
	m.sets[prefKey(profileID, name)] = stored
	return nil
}

func (m *memPrefStore) GetScalar(ctx context.Context, profileID, name string) (string, bool, error) {
	if m.getScalarErr != nil {
		return "", false, m.getScalarErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.scalars[prefKey(profileID, name)]
	return value, ok, nil
}

func (m *memPrefStore) SetScalar(ctx context.Context, profileID, name, value string) error {
	if m.setScalarErr != nil {
		return m.setScalarErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scalars[prefKey(profileID, name)] = value
	return nil
}

func (m *memPrefStore) DeleteScalar(ctx context.Context, profileID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scalars, prefKey(profileID, name))
	return nil
}

// mockLogoStorage provides a configurable mock for LogoStorage.
type mockLogoStorage struct {
	uploadLogoFn func(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
}

func (m *mockLogoStorage) UploadLogo(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.uploadLogoFn != nil {
		return m.uploadLogoFn(ctx, name, reader, size, contentType)
	}
	return "", nil
}

var (
	_ repository.Catalog         = (*mockCatalog)(nil)
	_ repository.PreferenceStore = (*memPrefStore)(nil)
	_ repository.LogoStorage     = (*mockLogoStorage)(nil)
)

func testVideos(ids ...string) []model.Video {
	videos := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, model.Video{ID: id, Title: "Video " + id})
	}
	return videos
}
