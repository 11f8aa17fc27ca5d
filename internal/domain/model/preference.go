package model

// PreferenceKind identifies one of the two persisted membership sets.
type PreferenceKind string

const (
	KindLiked      PreferenceKind = "liked"
	KindWatchLater PreferenceKind = "watchLater"
)

// Persisted key names, matching the browser localStorage keys the
// original frontend used so an exported profile stays readable.
const (
	KeyLikedVideos = "likedVideos"
	KeyWatchLater  = "watchLater"
)

// Scalar preference keys.
const (
	KeyLanguage   = "language"
	KeyTheme      = "theme"
	KeyColors     = "colors"
	KeyLogo       = "logo"
	KeyAutoplay   = "autoplayEnabled"
	KeyAdminToken = "adminToken"
)

func (k PreferenceKind) IsValid() bool {
	switch k {
	case KindLiked, KindWatchLater:
		return true
	default:
		return false
	}
}

// StorageKey returns the persisted key backing this set.
func (k PreferenceKind) StorageKey() string {
	if k == KindLiked {
		return KeyLikedVideos
	}
	return KeyWatchLater
}

func (k PreferenceKind) String() string {
	return string(k)
}
