package repository

import "context"

// PreferenceStore persists per-profile viewer preferences: two membership
// sets (liked, watch later) and a handful of scalars (language, theme,
// colors mirror, logo, autoplay flag, admin token).
//
// Keys are independent: there are no transactions across keys, and
// concurrent writes to the same key follow last-write-wins. A corrupt
// persisted value reads as absent, never as an error.
type PreferenceStore interface {
	// GetSet returns the persisted id list for the named set, in insertion
	// order. An absent or unparsable value yields an empty slice.
	GetSet(ctx context.Context, profileID, name string) ([]string, error)

	// SetSet overwrites the persisted set with the given ids.
	SetSet(ctx context.Context, profileID, name string, ids []string) error

	// GetScalar returns the persisted value for the named scalar and
	// whether it was present. Defaults are the caller's concern.
	GetScalar(ctx context.Context, profileID, name string) (string, bool, error)

	// SetScalar overwrites the persisted value.
	SetScalar(ctx context.Context, profileID, name, value string) error

	// DeleteScalar removes the persisted value. Deleting an absent scalar
	// is a no-op.
	DeleteScalar(ctx context.Context, profileID, name string) error
}
