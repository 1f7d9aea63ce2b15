// Package watch turns the stream of poll results into playback events.
package watch

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/syncer"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventPause
	EventResume
	EventStop
	EventModeChange
	EventError
	EventRecovered
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Snapshot
	Current   *core.Snapshot
	Failure   *core.Failure
}

// Watcher wraps a renderer and derives events from the results it sees.
// Events are delivered on a buffered channel; when the reader falls behind
// they are dropped rather than stalling the poll loop.
type Watcher struct {
	next   syncer.Renderer
	events chan Event
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	prev    *core.Snapshot
	failure *core.Failure
	closed  bool
}

// NewWatcher creates a watcher that forwards every result to next.
func NewWatcher(next syncer.Renderer, logger *zap.Logger) *Watcher {
	return &Watcher{
		next:   next,
		events: make(chan Event, 16),
		logger: logger,
		now:    time.Now,
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Render forwards res and emits the events it implies.
func (w *Watcher) Render(res core.Result) {
	if w.next != nil {
		w.next.Render(res)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	for _, e := range w.observe(res) {
		select {
		case w.events <- e:
		default:
			w.logger.Debug("event dropped", zap.String("type", eventTypeName(e.Type)))
		}
	}
}

// Close ends the event stream. Later results are still forwarded.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

func (w *Watcher) observe(res core.Result) []Event {
	now := w.now()

	if !res.OK() {
		// Repeated identical failures are reported once.
		if w.failure != nil && w.failure.Kind == res.Failure.Kind && w.failure.Message == res.Failure.Message {
			return nil
		}
		w.failure = res.Failure
		return []Event{{Type: EventError, Timestamp: now, Previous: w.prev, Failure: res.Failure}}
	}

	var events []Event
	if w.failure != nil {
		events = append(events, Event{Type: EventRecovered, Timestamp: now, Current: res.Snapshot, Failure: w.failure})
		w.failure = nil
	}

	events = append(events, diffSnapshots(w.prev, res.Snapshot, now)...)
	w.prev = res.Snapshot
	return events
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr *core.Snapshot, now time.Time) []Event {
	if curr == nil {
		return nil
	}

	// First successful poll
	if prev == nil {
		if hasSong(curr) {
			return []Event{{Type: EventTrackChange, Timestamp: now, Current: curr}}
		}
		return nil
	}

	var events []Event
	event := func(t EventType) {
		events = append(events, Event{Type: t, Timestamp: now, Previous: prev, Current: curr})
	}

	if prev.Song != curr.Song && hasSong(curr) {
		event(EventTrackChange)
	}

	if prev.State != curr.State {
		switch {
		case curr.State.IsPlaying():
			event(EventResume)
		case curr.State == core.StatePause:
			event(EventPause)
		case curr.State == core.StateStop:
			event(EventStop)
		}
	}

	if prev.Random != curr.Random || prev.Repeat != curr.Repeat {
		event(EventModeChange)
	}

	return events
}

func hasSong(s *core.Snapshot) bool {
	return s.Song.Title != "" || s.Song.Artist != ""
}
