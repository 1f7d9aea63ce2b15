package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/syncer/mocks"
)

// fakeTimer is armed by fakeClock and fired by hand.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) pending() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the single pending timer.
func (c *fakeClock) fire(t *testing.T) {
	t.Helper()
	pending := c.pending()
	if len(pending) != 1 {
		t.Fatalf("pending timers = %d, want 1", len(pending))
	}
	pending[0].fired = true
	pending[0].f()
}

var testSnapshot = &core.Snapshot{
	Song:  core.Song{Title: "A", Artist: "B"},
	State: core.StatePlay,
}

func TestStartWithZeroRatePollsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)

	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(testSnapshot, nil).Times(1)
	renderer.EXPECT().Render(gomock.Any()).Times(1)

	clock := &fakeClock{}
	s := New(fetcher, renderer, 0, zap.NewNop(), WithAfterFunc(clock.AfterFunc))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(clock.timers) != 0 {
		t.Errorf("timers armed = %d, want 0", len(clock.timers))
	}
	if s.Pending() {
		t.Error("Pending() = true, want false")
	}
}

func TestLoopKeepsSinglePendingTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)

	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(testSnapshot, nil).Times(4)
	renderer.EXPECT().Render(gomock.Any()).Times(4)

	clock := &fakeClock{}
	rate := 500 * time.Millisecond
	s := New(fetcher, renderer, rate, zap.NewNop(), WithAfterFunc(clock.AfterFunc))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		pending := clock.pending()
		if len(pending) != 1 {
			t.Fatalf("tick %d: pending timers = %d, want 1", i, len(pending))
		}
		if pending[0].d != rate {
			t.Errorf("tick %d: timer duration = %v, want %v", i, pending[0].d, rate)
		}
		clock.fire(t)
	}

	if got := len(clock.timers); got != 4 {
		t.Errorf("timers armed = %d, want 4", got)
	}
	if len(clock.pending()) != 1 {
		t.Errorf("pending timers = %d, want 1", len(clock.pending()))
	}
}

func TestFailedPollsKeepLooping(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)

	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(nil, errors.New("connection refused")).Times(3)
	renderer.EXPECT().Render(gomock.Any()).Do(func(res core.Result) {
		if res.OK() {
			t.Error("rendered success for a failed poll")
		}
	}).Times(3)

	clock := &fakeClock{}
	s := New(fetcher, renderer, time.Second, zap.NewNop(), WithAfterFunc(clock.AfterFunc))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	clock.fire(t)
	clock.fire(t)

	if len(clock.pending()) != 1 {
		t.Errorf("pending timers = %d, want 1", len(clock.pending()))
	}
	for _, timer := range clock.timers {
		if timer.d != time.Second {
			t.Errorf("timer duration = %v, want fixed 1s cadence", timer.d)
		}
	}
}

func TestPollOnceClassifiesFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    core.FailureKind
		wantMessage string
	}{
		{
			name:        "application",
			err:         &core.ApplicationError{Message: "player offline"},
			wantKind:    core.FailureApplication,
			wantMessage: "player offline",
		},
		{
			name:        "transport",
			err:         errors.New("unexpected status code: 502"),
			wantKind:    core.FailureTransport,
			wantMessage: "unexpected status code: 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)
			renderer := mocks.NewMockRenderer(ctrl)

			fetcher.EXPECT().FetchStatus(gomock.Any()).Return(nil, tt.err)
			var rendered core.Result
			renderer.EXPECT().Render(gomock.Any()).Do(func(res core.Result) {
				rendered = res
			})

			s := New(fetcher, renderer, 0, zap.NewNop())
			res := s.PollOnce(context.Background())

			if res.OK() || res.Failure == nil {
				t.Fatalf("PollOnce() = %+v, want failure", res)
			}
			if res.Failure.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", res.Failure.Kind, tt.wantKind)
			}
			if res.Failure.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", res.Failure.Message, tt.wantMessage)
			}
			if rendered.Failure != res.Failure {
				t.Error("rendered result differs from returned result")
			}
		})
	}
}

func TestStartTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)
	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(testSnapshot, nil).Times(1)
	renderer.EXPECT().Render(gomock.Any()).Times(1)

	s := New(fetcher, renderer, 0, zap.NewNop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}
}

func TestStopDisarmsTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)
	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(testSnapshot, nil).Times(1)
	renderer.EXPECT().Render(gomock.Any()).Times(1)

	clock := &fakeClock{}
	s := New(fetcher, renderer, time.Second, zap.NewNop(), WithAfterFunc(clock.AfterFunc))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	armed := clock.timers[0]
	s.Stop()

	if !armed.stopped {
		t.Error("pending timer was not stopped")
	}
	if s.Pending() {
		t.Error("Pending() = true after Stop")
	}

	// A tick that raced with Stop must not poll or re-arm.
	armed.f()
	if len(clock.timers) != 1 {
		t.Errorf("timers armed = %d, want 1", len(clock.timers))
	}
}

func TestCancelledContextEndsLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)
	fetcher.EXPECT().FetchStatus(gomock.Any()).Return(testSnapshot, nil).Times(1)
	renderer.EXPECT().Render(gomock.Any()).Times(1)

	clock := &fakeClock{}
	ctx, cancel := context.WithCancel(context.Background())
	s := New(fetcher, renderer, time.Second, zap.NewNop(), WithAfterFunc(clock.AfterFunc))
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()
	clock.fire(t)

	if len(clock.pending()) != 0 {
		t.Errorf("pending timers = %d, want 0", len(clock.pending()))
	}
}

// timedFetcher records poll completion times and the peak number of
// concurrent polls.
type timedFetcher struct {
	mu       sync.Mutex
	delay    time.Duration
	inflight int
	peak     int
	done     []time.Time
}

func (f *timedFetcher) FetchStatus(ctx context.Context) (*core.Snapshot, error) {
	f.mu.Lock()
	f.inflight++
	if f.inflight > f.peak {
		f.peak = f.inflight
	}
	f.mu.Unlock()

	time.Sleep(f.delay)

	f.mu.Lock()
	f.inflight--
	f.done = append(f.done, time.Now())
	f.mu.Unlock()
	return testSnapshot, nil
}

func (f *timedFetcher) completions() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.done...)
}

type renderFunc func(core.Result)

func (fn renderFunc) Render(res core.Result) { fn(res) }

func TestLoopCadence(t *testing.T) {
	tests := []struct {
		name  string
		rate  time.Duration
		delay time.Duration
	}{
		{name: "fast responses", rate: 20 * time.Millisecond},
		{name: "slow responses", rate: 10 * time.Millisecond, delay: 25 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &timedFetcher{delay: tt.delay}
			s := New(fetcher, renderFunc(func(core.Result) {}), tt.rate, zap.NewNop())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := s.Start(ctx); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			deadline := time.Now().Add(2 * time.Second)
			for len(fetcher.completions()) < 5 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			s.Stop()

			done := fetcher.completions()
			if len(done) < 5 {
				t.Fatalf("polls completed = %d, want at least 5", len(done))
			}
			for i := 1; i < len(done); i++ {
				if gap := done[i].Sub(done[i-1]); gap < tt.rate {
					t.Errorf("gap between polls %d and %d = %v, want >= %v", i-1, i, gap, tt.rate)
				}
			}

			fetcher.mu.Lock()
			peak := fetcher.peak
			fetcher.mu.Unlock()
			if peak != 1 {
				t.Errorf("concurrent polls = %d, want 1", peak)
			}
		})
	}
}
