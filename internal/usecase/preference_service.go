package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
)

// PreferenceService implements the liked / watch-later toggle protocol on
// top of a PreferenceStore.
type PreferenceService struct {
	catalog repository.Catalog
	prefs   repository.PreferenceStore
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(catalog repository.Catalog, prefs repository.PreferenceStore) *PreferenceService {
	return &PreferenceService{
		catalog: catalog,
		prefs:   prefs,
	}
}

// Toggle flips videoID's membership in the profile's set of the given
// kind and reports membership after the flip. The read-modify-write is
// last-write-wins; a corrupt stored set reads as empty, so a toggle on
// top of it starts a fresh single-element set.
func (s *PreferenceService) Toggle(ctx context.Context, profileID string, kind model.PreferenceKind, videoID string) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownPreferenceKind, kind)
	}

	members, err := s.prefs.GetSet(ctx, profileID, kind.StorageKey())
	if err != nil {
		return false, fmt.Errorf("read %s set: %w", kind, err)
	}

	idx := slices.Index(members, videoID)
	memberAfter := idx < 0
	if memberAfter {
		members = append(members, videoID)
	} else {
		members = slices.Delete(members, idx, idx+1)
	}

	if err := s.prefs.SetSet(ctx, profileID, kind.StorageKey(), members); err != nil {
		return false, fmt.Errorf("write %s set: %w", kind, err)
	}

	result := metrics.ToggleRemoved
	if memberAfter {
		result = metrics.ToggleAdded
	}
	metrics.PreferenceTogglesTotal.WithLabelValues(string(kind), result).Inc()

	return memberAfter, nil
}

// Members returns the raw video id membership of the profile's set.
func (s *PreferenceService) Members(ctx context.Context, profileID string, kind model.PreferenceKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreferenceKind, kind)
	}
	members, err := s.prefs.GetSet(ctx, profileID, kind.StorageKey())
	if err != nil {
		return nil, fmt.Errorf("read %s set: %w", kind, err)
	}
	return members, nil
}

// ResolveVideos returns the catalog videos the profile's set references,
// in catalog order. Ids the catalog no longer lists are silently
// dropped from the result; the stored set is left alone.
func (s *PreferenceService) ResolveVideos(ctx context.Context, profileID string, kind model.PreferenceKind) ([]model.Video, error) {
	members, err := s.Members(ctx, profileID, kind)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []model.Video{}, nil
	}

	videos, err := s.catalog.ListVideos(ctx, repository.VideoFilter{})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	wanted := make(map[string]struct{}, len(members))
	for _, id := range members {
		wanted[id] = struct{}{}
	}

	resolved := make([]model.Video, 0, len(members))
	for _, v := range videos {
		if _, ok := wanted[v.ID]; ok {
			resolved = append(resolved, v)
		}
	}
	return resolved, nil
}
