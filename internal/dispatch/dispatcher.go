// Package dispatch turns control clicks into player commands.
package dispatch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/ui"
)

// Sender delivers a command to the player service.
//
//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/tessro/vortex/internal/dispatch Sender,Poller,Reporter
type Sender interface {
	Send(ctx context.Context, cmd core.Command) error
}

// Poller refreshes the display out of band.
type Poller interface {
	PollOnce(ctx context.Context) core.Result
}

// Reporter shows command delivery failures.
type Reporter interface {
	RenderCommandFailure(cmd core.Command, err error)
}

// ControlCommands maps each control to the command it sends.
var ControlCommands = map[ui.ControlID]core.Command{
	ui.ControlPlayPause: core.CommandPlayPause,
	ui.ControlNext:      core.CommandNext,
	ui.ControlPrev:      core.CommandPrev,
	ui.ControlRandom:    core.CommandToggleRandom,
	ui.ControlRepeat:    core.CommandToggleRepeat,
}

// Dispatcher sends commands and then polls once so the display reflects the
// change without waiting for the next tick.
type Dispatcher struct {
	sender   Sender
	poller   Poller
	reporter Reporter
	logger   *zap.Logger

	bindOnce sync.Once
}

// New creates a dispatcher.
func New(sender Sender, poller Poller, reporter Reporter, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		poller:   poller,
		reporter: reporter,
		logger:   logger,
	}
}

// Dispatch sends cmd and then polls once, whatever the send outcome. The
// send error, if any, is reported on the display and returned.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd core.Command) error {
	log := d.logger.With(zap.String("command", string(cmd)))
	log.Debug("sending command")

	err := d.sender.Send(ctx, cmd)
	if err != nil {
		log.Warn("command failed", zap.Error(err))
		if ctx.Err() == nil {
			d.reporter.RenderCommandFailure(cmd, err)
		}
	}

	d.poller.PollOnce(ctx)
	return err
}

// Bind attaches a click handler for every control. Later calls are no-ops so
// each control carries exactly one handler.
func (d *Dispatcher) Bind(ctx context.Context, binding ui.Binding) {
	d.bindOnce.Do(func() {
		for _, id := range ui.Controls {
			cmd := ControlCommands[id]
			binding.OnClick(id, func() {
				_ = d.Dispatch(ctx, cmd)
			})
		}
	})
}
