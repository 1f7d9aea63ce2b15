package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "explicit suggestion wins",
			err:  WithSuggestion(ErrServerUnreachable, "custom"),
			want: "custom",
		},
		{
			name: "wrapped unreachable",
			err:  fmt.Errorf("poll: %w", ErrServerUnreachable),
			want: "player service is running",
		},
		{
			name: "connection refused text",
			err:  errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"),
			want: "player service is running",
		},
		{
			name: "missing endpoint",
			err:  fmt.Errorf("%w: 404", ErrUnexpectedStatus),
			want: "[endpoints]",
		},
		{
			name: "server error",
			err:  fmt.Errorf("%w: 502", ErrUnexpectedStatus),
			want: "having issues",
		},
		{
			name: "unknown command",
			err:  fmt.Errorf("%w: stop", ErrUnknownCommand),
			want: "Valid commands",
		},
		{
			name: "unrelated",
			err:  errors.New("boom"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want containing %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(WithSuggestion(errors.New("boom"), "try again"))
	want := "Error: boom\n\nSuggestion: try again"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := Format(errors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q, want %q", got, "Error: boom")
	}

	var vortexErr *VortexError
	if !errors.As(WithSuggestion(ErrTimeout, "x"), &vortexErr) || !errors.Is(vortexErr, ErrTimeout) {
		t.Error("WithSuggestion() should unwrap to the original error")
	}
}
