// Package wizard holds the interactive prompts used when stdout is a terminal.
package wizard

import (
	"os"

	"golang.org/x/term"

	"github.com/tessro/vortex/internal/config"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptConfig launches the config form if interactive mode is available.
// It returns base unchanged when not interactive.
func (i *Interactive) PromptConfig(base *config.Config) (*config.Config, error) {
	if !i.CanInteract() {
		return base, nil
	}
	return RunConfigForm(base)
}
