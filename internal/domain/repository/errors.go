package repository

import "errors"

var (
	// ErrVideoNotFound is returned when a single-video fetch misses.
	ErrVideoNotFound = errors.New("video not found")

	// ErrPageNotFound is returned when a page slug has no content.
	ErrPageNotFound = errors.New("page not found")

	// ErrCategoryNotFound is returned when an admin write names a missing
	// category.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUnauthorized is returned on a bad admin password or a rejected
	// bearer token. Callers clear any stored token when they see it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream wraps transport failures and unexpected upstream status
	// codes. Callers degrade to empty results rather than crash.
	ErrUpstream = errors.New("catalog unavailable")
)
