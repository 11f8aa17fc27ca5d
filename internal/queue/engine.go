// Package queue implements the autoplay playback queue: an ordered video
// snapshot with a cursor, boundary-clamped navigation, and a bounded
// up-next window.
package queue

import (
	"errors"

	"github.com/shindora/nesubtv/internal/domain/model"
)

var (
	// ErrAtStart signals that the cursor is already on the first video.
	// It is a boundary condition, not a failure; the cursor is unchanged.
	ErrAtStart = errors.New("queue at start")

	// ErrAtEnd signals that the cursor is already on the last video.
	ErrAtEnd = errors.New("queue at end")
)

// Engine holds a snapshot of a video sequence and a cursor into it.
// The snapshot is fixed at Load time and does not track later catalog
// changes. Invariant: 0 <= cursor < len(videos) whenever the queue is
// non-empty.
//
// Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	videos []model.Video
	cursor int
}

// New returns an empty engine. Load installs a snapshot.
func New() *Engine {
	return &Engine{}
}

// Load replaces the snapshot. If requestedID names a video in the
// sequence the cursor starts there; otherwise (including an empty
// requestedID) it starts at the first video. An unknown id is treated
// as absent, not as an error.
func (e *Engine) Load(videos []model.Video, requestedID string) {
	e.videos = videos
	e.cursor = 0
	if requestedID == "" {
		return
	}
	for i, v := range videos {
		if v.ID == requestedID {
			e.cursor = i
			return
		}
	}
}

// Current returns the video under the cursor. The second return is false
// when the queue is empty.
func (e *Engine) Current() (model.Video, bool) {
	if len(e.videos) == 0 {
		return model.Video{}, false
	}
	return e.videos[e.cursor], true
}

// Next advances the cursor and returns the new current video. At the last
// element (or on an empty queue) it returns ErrAtEnd and leaves the cursor
// unchanged; there is no wraparound.
func (e *Engine) Next() (model.Video, error) {
	if e.cursor >= len(e.videos)-1 {
		return model.Video{}, ErrAtEnd
	}
	e.cursor++
	return e.videos[e.cursor], nil
}

// Previous moves the cursor back and returns the new current video. At the
// first element (or on an empty queue) it returns ErrAtStart and leaves
// the cursor unchanged.
func (e *Engine) Previous() (model.Video, error) {
	if len(e.videos) == 0 || e.cursor == 0 {
		return model.Video{}, ErrAtStart
	}
	e.cursor--
	return e.videos[e.cursor], nil
}

// JumpTo moves the cursor to the video with the given id. It reports false
// and leaves the cursor unchanged when the id is not in the snapshot.
func (e *Engine) JumpTo(id string) (model.Video, bool) {
	for i, v := range e.videos {
		if v.ID == id {
			e.cursor = i
			return v, true
		}
	}
	return model.Video{}, false
}

// UpNext returns up to n videos strictly after the cursor, in order. Near
// the end of the queue it returns fewer, possibly none; it never includes
// the current video and never pads.
func (e *Engine) UpNext(n int) []model.Video {
	if n <= 0 || len(e.videos) == 0 {
		return nil
	}
	start := e.cursor + 1
	if start >= len(e.videos) {
		return nil
	}
	end := start + n
	if end > len(e.videos) {
		end = len(e.videos)
	}
	out := make([]model.Video, end-start)
	copy(out, e.videos[start:end])
	return out
}

// Cursor returns the current index. Meaningless when Len is zero.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Len returns the snapshot length.
func (e *Engine) Len() int {
	return len(e.videos)
}

// HasNext reports whether Next would move the cursor.
func (e *Engine) HasNext() bool {
	return e.cursor < len(e.videos)-1
}

// HasPrevious reports whether Previous would move the cursor.
func (e *Engine) HasPrevious() bool {
	return len(e.videos) > 0 && e.cursor > 0
}
