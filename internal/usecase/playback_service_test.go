package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
)

func newTestPlaybackService(catalog *mockCatalog, prefs *memPrefStore) *PlaybackService {
	return NewPlaybackService(catalog, prefs, DefaultPlaybackServiceConfig())
}

func TestPlaybackService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("positions cursor on requested video", func(t *testing.T) {
		catalog := &mockCatalog{
			listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
				if filter.Limit != 50 {
					t.Errorf("Limit = %d, want 50", filter.Limit)
				}
				return testVideos("a", "b", "c"), nil
			},
		}
		svc := newTestPlaybackService(catalog, newMemPrefStore())

		view, err := svc.Load(ctx, "p1", "b")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if view.Current == nil || view.Current.ID != "b" {
			t.Fatalf("Current = %+v, want video b", view.Current)
		}
		if view.Index != 1 || view.Total != 3 {
			t.Errorf("Index/Total = %d/%d, want 1/3", view.Index, view.Total)
		}
		if view.CanonicalURL != "/autoplay?video=b" {
			t.Errorf("CanonicalURL = %q", view.CanonicalURL)
		}
	})

	t.Run("unknown requested id falls back to first video", func(t *testing.T) {
		catalog := &mockCatalog{
			listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
				return testVideos("a", "b"), nil
			},
		}
		svc := newTestPlaybackService(catalog, newMemPrefStore())

		view, err := svc.Load(ctx, "p1", "nope")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if view.Current == nil || view.Current.ID != "a" {
			t.Fatalf("Current = %+v, want video a", view.Current)
		}
	})

	t.Run("propagates catalog failure", func(t *testing.T) {
		wantErr := errors.New("catalog down")
		catalog := &mockCatalog{
			listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
				return nil, wantErr
			},
		}
		svc := newTestPlaybackService(catalog, newMemPrefStore())

		if _, err := svc.Load(ctx, "p1", ""); !errors.Is(err, wantErr) {
			t.Errorf("Load() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("superseded load does not reposition the queue", func(t *testing.T) {
		fetchStarted := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32
		catalog := &mockCatalog{
			listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
				if calls.Add(1) == 1 {
					close(fetchStarted)
				}
				<-release
				return testVideos("a", "b", "c"), nil
			},
		}
		svc := newTestPlaybackService(catalog, newMemPrefStore())

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Issued first, superseded by the load for "b" below.
			if _, err := svc.Load(ctx, "p1", "c"); err != nil {
				t.Errorf("superseded Load() error = %v", err)
			}
		}()

		<-fetchStarted
		secondDone := make(chan struct{})
		go func() {
			defer close(secondDone)
			if _, err := svc.Load(ctx, "p1", "b"); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()

		// Give the second load time to register its epoch before the
		// shared fetch completes.
		time.Sleep(20 * time.Millisecond)
		close(release)
		<-done
		<-secondDone

		view, err := svc.View(ctx, "p1")
		if err != nil {
			t.Fatalf("View() error = %v", err)
		}
		if view.Current == nil || view.Current.ID != "b" {
			t.Errorf("Current = %+v, want the newer load's b", view.Current)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("catalog fetches = %d, want 1 coalesced fetch", got)
		}
	})
}

func TestPlaybackService_Navigation(t *testing.T) {
	ctx := context.Background()

	catalog := &mockCatalog{
		listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
			return testVideos("a", "b", "c"), nil
		},
	}

	t.Run("next and previous move the cursor", func(t *testing.T) {
		svc := newTestPlaybackService(catalog, newMemPrefStore())
		if _, err := svc.Load(ctx, "p1", "a"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		result, err := svc.Next(ctx, "p1")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !result.Moved || result.Video.ID != "b" {
			t.Fatalf("Next() = %+v, want moved to b", result)
		}
		if result.CanonicalURL != "/autoplay?video=b" {
			t.Errorf("CanonicalURL = %q", result.CanonicalURL)
		}

		result, err = svc.Previous(ctx, "p1")
		if err != nil {
			t.Fatalf("Previous() error = %v", err)
		}
		if !result.Moved || result.Video.ID != "a" {
			t.Fatalf("Previous() = %+v, want moved to a", result)
		}
	})

	t.Run("boundary hits report edge without moving", func(t *testing.T) {
		svc := newTestPlaybackService(catalog, newMemPrefStore())
		if _, err := svc.Load(ctx, "p1", "a"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		result, err := svc.Previous(ctx, "p1")
		if err != nil {
			t.Fatalf("Previous() error = %v", err)
		}
		if result.Moved || result.Boundary != "start" {
			t.Errorf("Previous() at start = %+v, want boundary start", result)
		}
		if result.Video == nil || result.Video.ID != "a" {
			t.Errorf("boundary result video = %+v, want current a", result.Video)
		}

		if _, err := svc.Jump(ctx, "p1", "c"); err != nil {
			t.Fatalf("Jump() error = %v", err)
		}
		result, err = svc.Next(ctx, "p1")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if result.Moved || result.Boundary != "end" {
			t.Errorf("Next() at end = %+v, want boundary end", result)
		}
	})

	t.Run("navigation on fresh profile loads a default queue", func(t *testing.T) {
		svc := newTestPlaybackService(catalog, newMemPrefStore())

		result, err := svc.Next(ctx, "fresh")
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !result.Moved || result.Video.ID != "b" {
			t.Errorf("Next() from fresh profile = %+v, want b", result)
		}
	})

	t.Run("jump to id outside snapshot reloads", func(t *testing.T) {
		snapshots := [][]model.Video{
			testVideos("a", "b"),
			testVideos("a", "b", "z"),
		}
		call := 0
		reloading := &mockCatalog{
			listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
				videos := snapshots[call]
				if call < len(snapshots)-1 {
					call++
				}
				return videos, nil
			},
		}
		svc := newTestPlaybackService(reloading, newMemPrefStore())
		if _, err := svc.Load(ctx, "p1", "a"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		result, err := svc.Jump(ctx, "p1", "z")
		if err != nil {
			t.Fatalf("Jump() error = %v", err)
		}
		if !result.Moved || result.Video.ID != "z" {
			t.Errorf("Jump() = %+v, want moved to z", result)
		}
	})

	t.Run("profiles do not share cursors", func(t *testing.T) {
		svc := newTestPlaybackService(catalog, newMemPrefStore())
		if _, err := svc.Load(ctx, "p1", "c"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if _, err := svc.Load(ctx, "p2", "a"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		view, err := svc.View(ctx, "p1")
		if err != nil {
			t.Fatalf("View() error = %v", err)
		}
		if view.Current.ID != "c" {
			t.Errorf("p1 current = %s, want c", view.Current.ID)
		}
	})
}

func TestPlaybackService_UpNext(t *testing.T) {
	ctx := context.Background()
	catalog := &mockCatalog{
		listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
			return testVideos("a", "b", "c", "d", "e", "f", "g", "h"), nil
		},
	}
	svc := newTestPlaybackService(catalog, newMemPrefStore())

	view, err := svc.Load(ctx, "p1", "b")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(view.UpNext) != 5 {
		t.Fatalf("len(UpNext) = %d, want 5", len(view.UpNext))
	}
	for i, want := range []string{"c", "d", "e", "f", "g"} {
		if view.UpNext[i].ID != want {
			t.Errorf("UpNext[%d] = %s, want %s", i, view.UpNext[i].ID, want)
		}
	}

	// Near the tail the preview shrinks instead of wrapping.
	view, err = svc.Load(ctx, "p1", "g")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(view.UpNext) != 1 || view.UpNext[0].ID != "h" {
		t.Errorf("UpNext near tail = %+v, want [h]", view.UpNext)
	}
}

func TestPlaybackService_Autoplay(t *testing.T) {
	ctx := context.Background()
	catalog := &mockCatalog{
		listVideosFn: func(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
			return testVideos("a"), nil
		},
	}
	svc := newTestPlaybackService(catalog, newMemPrefStore())

	enabled, err := svc.Autoplay(ctx, "p1")
	if err != nil {
		t.Fatalf("Autoplay() error = %v", err)
	}
	if enabled {
		t.Error("Autoplay() = true before any opt-in, want false")
	}

	if err := svc.SetAutoplay(ctx, "p1", true); err != nil {
		t.Fatalf("SetAutoplay() error = %v", err)
	}
	view, err := svc.View(ctx, "p1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if !view.AutoplayEnabled {
		t.Error("AutoplayEnabled = false after opt-in")
	}

	enabled, err = svc.Autoplay(ctx, "p2")
	if err != nil {
		t.Fatalf("Autoplay() error = %v", err)
	}
	if enabled {
		t.Error("autoplay leaked across profiles")
	}
}
