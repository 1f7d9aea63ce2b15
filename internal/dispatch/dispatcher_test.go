package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/dispatch/mocks"
	"github.com/tessro/vortex/internal/remote"
	"github.com/tessro/vortex/internal/render"
	"github.com/tessro/vortex/internal/syncer"
	"github.com/tessro/vortex/internal/ui"
)

func TestDispatchSendsThenPolls(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	poller := mocks.NewMockPoller(ctrl)
	reporter := mocks.NewMockReporter(ctrl)

	gomock.InOrder(
		sender.EXPECT().Send(gomock.Any(), core.CommandNext).Return(nil),
		poller.EXPECT().PollOnce(gomock.Any()).Return(core.Result{}),
	)

	d := New(sender, poller, reporter, zap.NewNop())
	if err := d.Dispatch(context.Background(), core.CommandNext); err != nil {
		t.Errorf("Dispatch() error = %v", err)
	}
}

func TestDispatchPollsAfterFailedSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	poller := mocks.NewMockPoller(ctrl)
	reporter := mocks.NewMockReporter(ctrl)

	sendErr := errors.New("connection refused")
	gomock.InOrder(
		sender.EXPECT().Send(gomock.Any(), core.CommandPlayPause).Return(sendErr),
		reporter.EXPECT().RenderCommandFailure(core.CommandPlayPause, sendErr),
		poller.EXPECT().PollOnce(gomock.Any()).Return(core.Result{}),
	)

	d := New(sender, poller, reporter, zap.NewNop())
	if err := d.Dispatch(context.Background(), core.CommandPlayPause); !errors.Is(err, sendErr) {
		t.Errorf("Dispatch() error = %v, want %v", err, sendErr)
	}
}

func TestDispatchCancelledSkipsReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)
	poller := mocks.NewMockPoller(ctrl)
	reporter := mocks.NewMockReporter(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender.EXPECT().Send(gomock.Any(), core.CommandPrev).Return(context.Canceled)
	poller.EXPECT().PollOnce(gomock.Any()).Return(core.Result{})

	d := New(sender, poller, reporter, zap.NewNop())
	if err := d.Dispatch(ctx, core.CommandPrev); !errors.Is(err, context.Canceled) {
		t.Errorf("Dispatch() error = %v, want context.Canceled", err)
	}
}

func TestBindMapsControls(t *testing.T) {
	tests := []struct {
		control ui.ControlID
		want    core.Command
	}{
		{ui.ControlPlayPause, core.CommandPlayPause},
		{ui.ControlNext, core.CommandNext},
		{ui.ControlPrev, core.CommandPrev},
		{ui.ControlRandom, core.CommandToggleRandom},
		{ui.ControlRepeat, core.CommandToggleRepeat},
	}

	for _, tt := range tests {
		t.Run(string(tt.control), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sender := mocks.NewMockSender(ctrl)
			poller := mocks.NewMockPoller(ctrl)
			reporter := mocks.NewMockReporter(ctrl)

			sender.EXPECT().Send(gomock.Any(), tt.want).Return(nil)
			poller.EXPECT().PollOnce(gomock.Any()).Return(core.Result{})

			screen := ui.NewScreen()
			d := New(sender, poller, reporter, zap.NewNop())
			d.Bind(context.Background(), screen)

			if !screen.Click(tt.control) {
				t.Fatalf("Click(%s) found no handler", tt.control)
			}
		})
	}
}

// countingBinding counts handler registrations.
type countingBinding struct {
	ui.Binding
	registrations map[ui.ControlID]int
}

func (b *countingBinding) OnClick(id ui.ControlID, _ func()) {
	b.registrations[id]++
}

func TestBindRegistersOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := New(mocks.NewMockSender(ctrl), mocks.NewMockPoller(ctrl), mocks.NewMockReporter(ctrl), zap.NewNop())

	b := &countingBinding{Binding: ui.NewScreen(), registrations: map[ui.ControlID]int{}}
	d.Bind(context.Background(), b)
	d.Bind(context.Background(), b)

	for _, id := range ui.Controls {
		if got := b.registrations[id]; got != 1 {
			t.Errorf("%s registered %d times, want 1", id, got)
		}
	}
}

// player is a minimal in-memory player service.
type player struct {
	mu      sync.Mutex
	playing bool
	random  bool
	sent    []string
}

func (p *player) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/player/update/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		state := "pause"
		if p.playing {
			state = "play"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"song":{"title":"Song","artist":"Band"},"state":"` +
			state + `","random":` + boolJSON(p.random) + `,"repeat":false}`))
	})
	mux.HandleFunc("/player/play-pause/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.playing = !p.playing
		p.sent = append(p.sent, "play-pause")
		p.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/player/random/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.random = !p.random
		p.sent = append(p.sent, "random")
		p.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/player/next/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return mux
}

func boolJSON(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func newStack(t *testing.T, p *player) (*ui.Screen, *syncer.Synchronizer, *Dispatcher) {
	t.Helper()

	server := httptest.NewServer(p.handler())
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Server.BaseURL = server.URL + "/player/"
	endpoints, err := cfg.ResolveEndpoints()
	if err != nil {
		t.Fatalf("ResolveEndpoints() error = %v", err)
	}

	logger := zap.NewNop()
	client := remote.New(endpoints, 5*time.Second, logger)
	screen := ui.NewScreen()
	renderer := render.New(screen)
	poller := syncer.New(client, renderer, 0, logger)
	return screen, poller, New(client, poller, renderer, logger)
}

func TestClickRefreshesDisplay(t *testing.T) {
	p := &player{}
	screen, poller, d := newStack(t, p)
	ctx := context.Background()

	if err := poller.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := screen.Panel().Icon(ui.ControlPlayPause); got != ui.IconPlay {
		t.Fatalf("icon before click = %q, want %q", got, ui.IconPlay)
	}

	d.Bind(ctx, screen)
	screen.Click(ui.ControlPlayPause)
	screen.Click(ui.ControlRandom)

	panel := screen.Panel()
	if got := panel.Icon(ui.ControlPlayPause); got != ui.IconPause {
		t.Errorf("icon after click = %q, want %q", got, ui.IconPause)
	}
	if !panel.IsActive(ui.ControlRandom) {
		t.Error("random control not active after toggle")
	}
	if got := panel.Text(ui.RegionSongStatus); got != "[random: on] [repeat: off]" {
		t.Errorf("status = %q", got)
	}
	if panel.HasError() {
		t.Errorf("unexpected banner %q", panel.Error)
	}
}

func TestClickFailureShowsBanner(t *testing.T) {
	p := &player{playing: true}
	screen, poller, d := newStack(t, p)
	ctx := context.Background()

	if err := poller.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	d.Bind(ctx, screen)
	screen.Click(ui.ControlNext)

	panel := screen.Panel()
	if !panel.HasError() {
		t.Fatal("expected banner after failed command")
	}
	if got := panel.Text(ui.RegionSongTitle); got != "Song" {
		t.Errorf("title = %q, want song info kept", got)
	}
}
