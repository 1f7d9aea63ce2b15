// Package app wires the synchronizer, renderer and dispatcher for one
// session against a display binding.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/dispatch"
	"github.com/tessro/vortex/internal/remote"
	"github.com/tessro/vortex/internal/render"
	"github.com/tessro/vortex/internal/syncer"
	"github.com/tessro/vortex/internal/ui"
)

// Module provides the session components. It expects a *config.Config, a
// ui.Binding and a *zap.Logger in the graph.
var Module = fx.Module("vortex",
	fx.Provide(
		newClient,
		render.New,
		func(r *render.Renderer) syncer.Renderer { return r },
		newSynchronizer,
		newDispatcher,
	),
	fx.Invoke(registerHooks),
)

// App is a running session.
type App struct {
	Client       *remote.Client
	Synchronizer *syncer.Synchronizer
	Dispatcher   *dispatch.Dispatcher

	fx      *fx.App
	logger  *zap.Logger
	started atomic.Bool
}

// New builds a session. Extra options are applied after Module, so callers
// can decorate components (for example wrapping the renderer).
func New(cfg *config.Config, binding ui.Binding, logger *zap.Logger, opts ...fx.Option) (*App, error) {
	a := &App{logger: logger}

	options := []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log.Named("fx")}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(cfg),
		fx.Provide(
			func() ui.Binding { return binding },
			func() *zap.Logger { return logger },
		),
		Module,
		fx.Populate(&a.Client, &a.Synchronizer, &a.Dispatcher),
	}
	options = append(options, opts...)

	a.fx = fx.New(options...)
	if err := a.fx.Err(); err != nil {
		return nil, fmt.Errorf("failed to build session: %w", err)
	}
	return a, nil
}

// Start binds the controls and runs the first poll. The refresh loop keeps
// going until Stop.
func (a *App) Start(ctx context.Context) error {
	if err := a.fx.Start(ctx); err != nil {
		return err
	}
	a.started.Store(true)
	return nil
}

// Refresh polls once outside the loop's cadence.
func (a *App) Refresh(ctx context.Context) core.Result {
	return a.Synchronizer.PollOnce(ctx)
}

// Stop halts the refresh loop and flushes the logger. It does nothing for a
// session that was never started.
func (a *App) Stop(ctx context.Context) error {
	if !a.started.Swap(false) {
		return nil
	}
	return a.fx.Stop(ctx)
}

func newClient(cfg *config.Config, logger *zap.Logger) (*remote.Client, error) {
	return remote.NewFromConfig(cfg, logger)
}

func newSynchronizer(cfg *config.Config, client *remote.Client, renderer syncer.Renderer, logger *zap.Logger) *syncer.Synchronizer {
	return syncer.New(client, renderer, cfg.RefreshInterval(), logger.Named("sync"))
}

func newDispatcher(client *remote.Client, s *syncer.Synchronizer, r *render.Renderer, logger *zap.Logger) *dispatch.Dispatcher {
	return dispatch.New(client, s, r, logger.Named("dispatch"))
}

// registerHooks starts the session on a context that outlives OnStart, so
// control clicks and ticks keep working after startup returns.
func registerHooks(lc fx.Lifecycle, binding ui.Binding, s *syncer.Synchronizer, d *dispatch.Dispatcher, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Bind(ctx, binding)
			logger.Info("session started", zap.Duration("refresh", s.Rate()))
			return s.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			s.Stop()
			logger.Info("session stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
