// Package syncer keeps the display in step with the player service.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/core"
)

// ErrAlreadyStarted is returned when Start is called more than once.
var ErrAlreadyStarted = errors.New("synchronizer already started")

// Fetcher reads the current player state.
//
//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/tessro/vortex/internal/syncer Fetcher,Renderer
type Fetcher interface {
	FetchStatus(ctx context.Context) (*core.Snapshot, error)
}

// Renderer displays a poll result.
type Renderer interface {
	Render(res core.Result)
}

// Timer is a pending one-shot tick. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer calling f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Synchronizer) {
		s.afterFunc = fn
	}
}

// Synchronizer polls the player service and renders every result. Ticks are
// chained one-shot timers, so at most one tick is ever pending and a slow
// response delays the next tick instead of overlapping it.
type Synchronizer struct {
	fetcher   Fetcher
	renderer  Renderer
	rate      time.Duration
	logger    *zap.Logger
	afterFunc AfterFunc

	mu      sync.Mutex
	ctx     context.Context
	timer   Timer
	started bool
	stopped bool
}

// New creates a synchronizer. A zero rate disables the periodic loop.
func New(fetcher Fetcher, renderer Renderer, rate time.Duration, logger *zap.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fetcher:   fetcher,
		renderer:  renderer,
		rate:      rate,
		logger:    logger,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rate returns the poll interval.
func (s *Synchronizer) Rate() time.Duration {
	return s.rate
}

// PollOnce fetches the player state and renders the result exactly once.
// Polls whose context is already cancelled are not rendered.
func (s *Synchronizer) PollOnce(ctx context.Context) core.Result {
	res := s.poll(ctx)
	if ctx.Err() != nil {
		s.logger.Debug("poll abandoned", zap.Error(ctx.Err()))
		return res
	}
	s.renderer.Render(res)
	return res
}

func (s *Synchronizer) poll(ctx context.Context) core.Result {
	snapshot, err := s.fetcher.FetchStatus(ctx)
	if err == nil {
		s.logger.Debug("poll completed",
			zap.String("state", string(snapshot.State)),
			zap.String("title", snapshot.Song.Title))
		return core.Succeeded(snapshot)
	}

	var appErr *core.ApplicationError
	if errors.As(err, &appErr) {
		s.logger.Warn("player reported an error", zap.String("error", appErr.Message))
		return core.Failed(core.FailureApplication, appErr.Message, err)
	}

	s.logger.Warn("poll failed", zap.Error(err))
	return core.Failed(core.FailureTransport, err.Error(), err)
}

// Start performs one immediate poll and, when the rate is positive, arms the
// refresh loop. It returns once the first poll has rendered. The loop runs
// until ctx is cancelled or Stop is called.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx = ctx
	s.mu.Unlock()

	s.PollOnce(ctx)

	if s.rate <= 0 {
		s.logger.Debug("periodic refresh disabled")
		return nil
	}
	s.schedule()
	return nil
}

// Stop disarms the pending tick. A tick already polling finishes its render
// but does not re-arm.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a tick is armed.
func (s *Synchronizer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Synchronizer) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.ctx.Err() != nil {
		s.timer = nil
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.afterFunc(s.rate, s.tick)
}

func (s *Synchronizer) tick() {
	s.mu.Lock()
	s.timer = nil
	ctx := s.ctx
	stopped := s.stopped
	s.mu.Unlock()

	if stopped || ctx.Err() != nil {
		return
	}

	s.PollOnce(ctx)
	s.schedule()
}
