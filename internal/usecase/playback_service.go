package usecase

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
	"github.com/shindora/nesubtv/internal/queue"
)

// QueueView is the rendered state of a profile's autoplay queue.
type QueueView struct {
	Current         *model.Video
	Index           int
	Total           int
	HasPrevious     bool
	HasNext         bool
	UpNext          []model.Video
	AutoplayEnabled bool
	// CanonicalURL is the externally visible position marker for the
	// current video. The UI keeps the address bar on it so deep links
	// and back/forward navigation stay consistent.
	CanonicalURL string
}

// NavResult is the outcome of a next/previous/jump operation. A boundary
// hit is not an error: Moved is false, Boundary names the edge, and the
// cursor is unchanged.
type NavResult struct {
	Video        *model.Video
	Moved        bool
	Boundary     string // "start" or "end" when Moved is false
	CanonicalURL string
}

// PlaybackServiceConfig holds configuration for PlaybackService.
type PlaybackServiceConfig struct {
	// ListLimit is how many videos one queue snapshot holds.
	ListLimit int
	// UpNextCount is the size of the up-next preview window.
	UpNextCount int
}

// DefaultPlaybackServiceConfig returns the defaults the site shipped
// with: a 50-video snapshot and a 5-video up-next window.
func DefaultPlaybackServiceConfig() PlaybackServiceConfig {
	return PlaybackServiceConfig{
		ListLimit:   50,
		UpNextCount: 5,
	}
}

// profileQueue pairs a queue engine with a load epoch. The epoch guards
// against a slow catalog response clobbering a newer load: only the
// response for the latest issued load may install a snapshot.
type profileQueue struct {
	engine *queue.Engine
	epoch  uint64
}

// PlaybackService owns the per-profile autoplay queues. Queue state is an
// in-memory snapshot; preferences (the autoplay flag) go through the
// preference store.
type PlaybackService struct {
	catalog repository.Catalog
	prefs   repository.PreferenceStore
	sfGroup singleflight.Group

	listLimit   int
	upNextCount int

	mu     sync.Mutex
	queues map[string]*profileQueue
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	catalog repository.Catalog,
	prefs repository.PreferenceStore,
	cfg PlaybackServiceConfig,
) *PlaybackService {
	return &PlaybackService{
		catalog:     catalog,
		prefs:       prefs,
		listLimit:   cfg.ListLimit,
		upNextCount: cfg.UpNextCount,
		queues:      make(map[string]*profileQueue),
	}
}

// Load fetches a fresh playlist snapshot for the profile and positions
// the cursor: on requestedID when present in the snapshot, else on the
// first video. A response superseded by a newer load for the same
// profile is discarded and the newer state is returned instead.
func (s *PlaybackService) Load(ctx context.Context, profileID, requestedID string) (*QueueView, error) {
	s.mu.Lock()
	pq, ok := s.queues[profileID]
	if !ok {
		pq = &profileQueue{engine: queue.New()}
		s.queues[profileID] = pq
	}
	pq.epoch++
	issued := pq.epoch
	s.mu.Unlock()

	videos, err := s.fetchPlaylist(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if pq.epoch != issued {
		// A newer load won the race; keep its snapshot.
		metrics.StaleLoadsDiscardedTotal.Inc()
	} else {
		pq.engine.Load(videos, requestedID)
	}
	view := s.snapshotLocked(pq)
	s.mu.Unlock()

	return s.finishView(ctx, profileID, view)
}

// Next advances the profile's queue. A fresh profile gets a default
// snapshot first, so Next from nothing lands on the second video.
func (s *PlaybackService) Next(ctx context.Context, profileID string) (*NavResult, error) {
	return s.navigate(ctx, profileID, metrics.NavNext)
}

// Previous moves the profile's queue back one video.
func (s *PlaybackService) Previous(ctx context.Context, profileID string) (*NavResult, error) {
	return s.navigate(ctx, profileID, metrics.NavPrevious)
}

func (s *PlaybackService) navigate(ctx context.Context, profileID, direction string) (*NavResult, error) {
	if err := s.ensureLoaded(ctx, profileID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	pq := s.queues[profileID]

	var (
		video    model.Video
		navErr   error
		boundary string
	)
	if direction == metrics.NavNext {
		video, navErr = pq.engine.Next()
		boundary = "end"
	} else {
		video, navErr = pq.engine.Previous()
		boundary = "start"
	}

	if navErr != nil {
		current, ok := pq.engine.Current()
		s.mu.Unlock()

		metrics.QueueNavigationsTotal.WithLabelValues(direction, metrics.NavBoundary).Inc()
		result := &NavResult{Moved: false, Boundary: boundary}
		if ok {
			result.Video = &current
			result.CanonicalURL = canonicalURL(current.ID)
		}
		return result, nil
	}
	s.mu.Unlock()

	metrics.QueueNavigationsTotal.WithLabelValues(direction, metrics.NavMoved).Inc()
	return &NavResult{
		Video:        &video,
		Moved:        true,
		CanonicalURL: canonicalURL(video.ID),
	}, nil
}

// Jump moves the cursor straight to the given video, the way clicking an
// up-next card does. An id outside the current snapshot triggers a fresh
// load positioned on it.
func (s *PlaybackService) Jump(ctx context.Context, profileID, videoID string) (*NavResult, error) {
	if err := s.ensureLoaded(ctx, profileID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	pq := s.queues[profileID]
	video, ok := pq.engine.JumpTo(videoID)
	s.mu.Unlock()

	if !ok {
		view, err := s.Load(ctx, profileID, videoID)
		if err != nil {
			return nil, err
		}
		if view.Current == nil {
			metrics.QueueNavigationsTotal.WithLabelValues(metrics.NavJump, metrics.NavBoundary).Inc()
			return &NavResult{Moved: false, Boundary: "end"}, nil
		}
		video = *view.Current
	}

	metrics.QueueNavigationsTotal.WithLabelValues(metrics.NavJump, metrics.NavMoved).Inc()
	return &NavResult{
		Video:        &video,
		Moved:        true,
		CanonicalURL: canonicalURL(video.ID),
	}, nil
}

// View returns the queue state without reloading the snapshot, loading
// one only when the profile has none yet.
func (s *PlaybackService) View(ctx context.Context, profileID string) (*QueueView, error) {
	if err := s.ensureLoaded(ctx, profileID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	view := s.snapshotLocked(s.queues[profileID])
	s.mu.Unlock()

	return s.finishView(ctx, profileID, view)
}

// SetAutoplay persists the autoplay switch.
func (s *PlaybackService) SetAutoplay(ctx context.Context, profileID string, enabled bool) error {
	return s.prefs.SetScalar(ctx, profileID, model.KeyAutoplay, strconv.FormatBool(enabled))
}

// Autoplay reads the autoplay switch; absent reads as disabled.
func (s *PlaybackService) Autoplay(ctx context.Context, profileID string) (bool, error) {
	value, _, err := s.prefs.GetScalar(ctx, profileID, model.KeyAutoplay)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// ensureLoaded installs a default snapshot for a profile that has none.
func (s *PlaybackService) ensureLoaded(ctx context.Context, profileID string) error {
	s.mu.Lock()
	pq, ok := s.queues[profileID]
	loaded := ok && pq.engine.Len() > 0
	s.mu.Unlock()

	if loaded {
		return nil
	}
	_, err := s.Load(ctx, profileID, "")
	return err
}

// fetchPlaylist retrieves the queue snapshot source, coalescing
// concurrent identical fetches across profiles.
func (s *PlaybackService) fetchPlaylist(ctx context.Context) ([]model.Video, error) {
	result, err, _ := s.sfGroup.Do("playlist", func() (any, error) {
		return s.catalog.ListVideos(ctx, repository.VideoFilter{Limit: s.listLimit})
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Video), nil
}

// snapshotLocked renders the engine state. Caller holds s.mu.
func (s *PlaybackService) snapshotLocked(pq *profileQueue) *QueueView {
	view := &QueueView{
		Total:       pq.engine.Len(),
		Index:       pq.engine.Cursor(),
		HasPrevious: pq.engine.HasPrevious(),
		HasNext:     pq.engine.HasNext(),
		UpNext:      pq.engine.UpNext(s.upNextCount),
	}
	if current, ok := pq.engine.Current(); ok {
		view.Current = &current
		view.CanonicalURL = canonicalURL(current.ID)
	}
	return view
}

// finishView fills in the preference-backed fields after the engine lock
// is released.
func (s *PlaybackService) finishView(ctx context.Context, profileID string, view *QueueView) (*QueueView, error) {
	enabled, err := s.Autoplay(ctx, profileID)
	if err != nil {
		return nil, err
	}
	view.AutoplayEnabled = enabled
	return view, nil
}

func canonicalURL(videoID string) string {
	return "/autoplay?video=" + url.QueryEscape(videoID)
}
