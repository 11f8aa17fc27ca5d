package usecase

import "errors"

var (
	// ErrUnknownPreferenceKind is returned when a toggle names neither
	// liked nor watchLater.
	ErrUnknownPreferenceKind = errors.New("unknown preference kind")

	// ErrInvalidLanguage is returned for a locale outside en/id.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrInvalidTheme is returned for a theme outside light/dark.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrLogoStorageDisabled is returned when a logo upload arrives but no
	// object storage is configured.
	ErrLogoStorageDisabled = errors.New("logo storage disabled")
)
