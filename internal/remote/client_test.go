package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
	vxerrors "github.com/tessro/vortex/internal/errors"
)

func endpointsFor(server *httptest.Server) config.Endpoints {
	return config.Endpoints{
		Status: server.URL + "/update/",
		Commands: map[core.Command]string{
			core.CommandPlayPause:    server.URL + "/play-pause/",
			core.CommandNext:         server.URL + "/next/",
			core.CommandPrev:         server.URL + "/previous/",
			core.CommandToggleRandom: server.URL + "/random/",
			core.CommandToggleRepeat: server.URL + "/repeat/",
		},
	}
}

func TestClient_FetchStatus(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		ctxFunc      func() (context.Context, context.CancelFunc)
		want         *core.Snapshot
		wantAppError string
		wantErr      error
		wantErrText  string
	}{
		{
			name:       "Success - paused with random",
			statusCode: http.StatusOK,
			body:       `{"success": true, "song": {"title": "A", "artist": "B", "album": "C"}, "state": "pause", "random": true, "repeat": false}`,
			want: &core.Snapshot{
				Song:   core.Song{Title: "A", Artist: "B"},
				State:  core.StatePause,
				Random: true,
			},
		},
		{
			name:       "Success - no song loaded",
			statusCode: http.StatusOK,
			body:       `{"success": true, "song": {}, "state": "stop", "random": false, "repeat": true}`,
			want: &core.Snapshot{
				State:  core.StateStop,
				Repeat: true,
			},
		},
		{
			name:         "Application failure",
			statusCode:   http.StatusOK,
			body:         `{"success": false, "error": "player offline"}`,
			wantAppError: "player offline",
		},
		{
			name:        "Transport failure - 500",
			statusCode:  http.StatusInternalServerError,
			body:        `oops`,
			wantErr:     vxerrors.ErrUnexpectedStatus,
			wantErrText: "500",
		},
		{
			name:       "Transport failure - not JSON",
			statusCode: http.StatusOK,
			body:       `<html></html>`,
			wantErr:    vxerrors.ErrInvalidResponse,
		},
		{
			name: "Context cancelled",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			statusCode:  http.StatusOK,
			body:        `{"success": true}`,
			wantErr:     context.Canceled,
			wantErrText: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/update/" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				if r.Method != http.MethodGet {
					t.Errorf("unexpected method %q", r.Method)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var ctx context.Context
			var cancel context.CancelFunc
			if tt.ctxFunc != nil {
				ctx, cancel = tt.ctxFunc()
			} else {
				ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
			}
			defer cancel()

			client := New(endpointsFor(server), 5*time.Second, zap.NewNop())
			got, err := client.FetchStatus(ctx)

			if tt.wantAppError != "" {
				var appErr *core.ApplicationError
				if !errors.As(err, &appErr) {
					t.Fatalf("expected *core.ApplicationError, got %v", err)
				}
				if appErr.Message != tt.wantAppError {
					t.Errorf("Message = %q, want %q", appErr.Message, tt.wantAppError)
				}
				return
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error wrapping %v, got %v", tt.wantErr, err)
				}
				if tt.wantErrText != "" && !strings.Contains(err.Error(), tt.wantErrText) {
					t.Errorf("expected error %q to contain %q", err.Error(), tt.wantErrText)
				}
				var appErr *core.ApplicationError
				if errors.As(err, &appErr) {
					t.Errorf("transport failure reported as application error: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != *tt.want {
				t.Errorf("FetchStatus() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestClient_FetchStatusUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	eps := endpointsFor(server)
	server.Close()

	client := New(eps, time.Second, zap.NewNop())
	_, err := client.FetchStatus(context.Background())
	if !errors.Is(err, vxerrors.ErrServerUnreachable) {
		t.Fatalf("expected ErrServerUnreachable, got %v", err)
	}
}

func TestClient_Send(t *testing.T) {
	var hits atomic.Int32
	var lastPath atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		lastPath.Store(r.URL.Path)
		if r.URL.Path == "/repeat/" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		// Body is ignored, even when it reports a failure.
		_, _ = w.Write([]byte(`{"success": false, "error": "ignored"}`))
	}))
	defer server.Close()

	client := New(endpointsFor(server), time.Second, zap.NewNop())
	ctx := context.Background()

	if err := client.Send(ctx, core.CommandPrev); err != nil {
		t.Fatalf("Send(prev) error = %v", err)
	}
	if got := lastPath.Load(); got != "/previous/" {
		t.Errorf("Send(prev) hit %v, want /previous/", got)
	}

	err := client.Send(ctx, core.CommandToggleRepeat)
	if !errors.Is(err, vxerrors.ErrUnexpectedStatus) {
		t.Errorf("Send(repeat) error = %v, want ErrUnexpectedStatus", err)
	}

	err = client.Send(ctx, core.Command("eject"))
	if !errors.Is(err, vxerrors.ErrUnknownCommand) {
		t.Errorf("Send(eject) error = %v, want ErrUnknownCommand", err)
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BaseURL = "not a url\x7f"
	if _, err := NewFromConfig(cfg, zap.NewNop()); !errors.Is(err, vxerrors.ErrInvalidConfig) {
		t.Fatalf("NewFromConfig() error = %v, want ErrInvalidConfig", err)
	}

	cfg = config.Default()
	client, err := NewFromConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if client.endpoints.Status != "http://localhost:8000/player/update/" {
		t.Errorf("Status endpoint = %q", client.endpoints.Status)
	}
}
