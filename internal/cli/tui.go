package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/vortex/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the now-playing dashboard",
	Long: `Launch the full-screen now-playing dashboard.

The panel is refreshed every player.refresh_rate milliseconds (0 disables
periodic refresh) and after every command.

Keyboard shortcuts:
  Space        Play/Pause
  n            Next song
  p            Previous song
  z            Toggle random
  r            Toggle repeat
  u            Refresh now
  x            Dismiss error
  ?            Help
  q, Ctrl+C    Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (overrides player.refresh_rate)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("refresh") {
		cfg.Player.RefreshRate = tuiRefresh
		if err := cfg.Player.Validate(); err != nil {
			return err
		}
	}

	logger, err := newLogger(true)
	if err != nil {
		return err
	}
	return tui.Run(cfg, logger)
}
