package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/i18n"
)

// ThemeView is the fully resolved appearance for one profile: the
// light/dark choice plus the site-wide colors and logo.
type ThemeView struct {
	Theme  model.Theme
	Colors model.Colors
	Logo   string
}

// LocaleView is the active language with its full message table, enough
// for a client to render every labelled element.
type LocaleView struct {
	Language model.Language
	Messages map[string]string
}

// SettingsService resolves per-profile appearance and language. The
// theme choice and language live in the preference store; colors and
// logo come from the catalog's site settings, mirrored locally so the
// last known appearance survives a catalog outage.
type SettingsService struct {
	catalog    repository.Catalog
	prefs      repository.PreferenceStore
	translator *i18n.Translator
	logger     *slog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(
	catalog repository.Catalog,
	prefs repository.PreferenceStore,
	translator *i18n.Translator,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		catalog:    catalog,
		prefs:      prefs,
		translator: translator,
		logger:     logger,
	}
}

// ResolveTheme returns the profile's appearance. The light/dark choice
// is purely local, defaulting to light. Colors and logo are refreshed
// from the catalog when it answers; when it does not, the local mirror
// (or the built-in defaults) is served and the failure only logged.
func (s *SettingsService) ResolveTheme(ctx context.Context, profileID string) (*ThemeView, error) {
	theme, err := s.localTheme(ctx, profileID)
	if err != nil {
		return nil, err
	}

	view := &ThemeView{Theme: theme}

	settings, err := s.catalog.GetSettings(ctx)
	if err != nil {
		s.logger.Warn("site settings unavailable, serving local mirror", "error", err)
		view.Colors, view.Logo = s.mirroredAppearance(ctx, profileID)
		return view, nil
	}

	view.Colors = settings.Colors
	view.Logo = settings.Logo
	s.mirrorAppearance(ctx, profileID, settings)
	return view, nil
}

// SetTheme stores an explicit light/dark choice.
func (s *SettingsService) SetTheme(ctx context.Context, profileID string, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.prefs.SetScalar(ctx, profileID, model.KeyTheme, string(theme))
}

// ToggleTheme flips light to dark and back, returning the new value.
func (s *SettingsService) ToggleTheme(ctx context.Context, profileID string) (model.Theme, error) {
	theme, err := s.localTheme(ctx, profileID)
	if err != nil {
		return "", err
	}
	next := theme.Toggle()
	if err := s.prefs.SetScalar(ctx, profileID, model.KeyTheme, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

// Language returns the profile's stored language, defaulting to
// Indonesian when unset or unrecognized.
func (s *SettingsService) Language(ctx context.Context, profileID string) (model.Language, error) {
	value, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyLanguage)
	if err != nil {
		return "", err
	}
	lang := model.Language(value)
	if !ok || !lang.IsValid() {
		return model.DefaultLanguage, nil
	}
	return lang, nil
}

// SetLanguage stores an explicit language choice.
func (s *SettingsService) SetLanguage(ctx context.Context, profileID string, lang model.Language) error {
	if !lang.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return s.prefs.SetScalar(ctx, profileID, model.KeyLanguage, string(lang))
}

// ToggleLanguage switches between the two supported languages and
// returns the new value.
func (s *SettingsService) ToggleLanguage(ctx context.Context, profileID string) (model.Language, error) {
	lang, err := s.Language(ctx, profileID)
	if err != nil {
		return "", err
	}
	next := lang.Toggle()
	if err := s.prefs.SetScalar(ctx, profileID, model.KeyLanguage, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

// Locale returns the active language together with its message table.
func (s *SettingsService) Locale(ctx context.Context, profileID string) (*LocaleView, error) {
	lang, err := s.Language(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &LocaleView{
		Language: lang,
		Messages: s.translator.Messages(lang),
	}, nil
}

func (s *SettingsService) localTheme(ctx context.Context, profileID string) (model.Theme, error) {
	value, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyTheme)
	if err != nil {
		return "", err
	}
	theme := model.Theme(value)
	if !ok || !theme.IsValid() {
		return model.ThemeLight, nil
	}
	return theme, nil
}

// mirrorAppearance writes the catalog's colors and logo through to the
// preference store. Mirror write failures are logged, not surfaced; the
// fresh settings were already resolved.
func (s *SettingsService) mirrorAppearance(ctx context.Context, profileID string, settings *model.ThemeSettings) {
	raw, err := json.Marshal(settings.Colors)
	if err == nil {
		if err := s.prefs.SetScalar(ctx, profileID, model.KeyColors, string(raw)); err != nil {
			s.logger.Warn("mirroring colors failed", "error", err)
		}
	}
	if settings.Logo != "" {
		if err := s.prefs.SetScalar(ctx, profileID, model.KeyLogo, settings.Logo); err != nil {
			s.logger.Warn("mirroring logo failed", "error", err)
		}
	}
}

// mirroredAppearance reads back the last mirrored colors and logo,
// falling back to the built-in defaults when nothing usable is stored.
func (s *SettingsService) mirroredAppearance(ctx context.Context, profileID string) (model.Colors, string) {
	colors := model.DefaultColors()

	raw, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyColors)
	if err == nil && ok {
		var stored model.Colors
		if json.Unmarshal([]byte(raw), &stored) == nil {
			colors = stored
		}
	}

	logo := ""
	if value, ok, err := s.prefs.GetScalar(ctx, profileID, model.KeyLogo); err == nil && ok {
		logo = value
	}
	return colors, logo
}
