package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/vortex/internal/core"
)

var controlCmds = []struct {
	use     string
	aliases []string
	short   string
	command core.Command
}{
	{"play-pause", []string{"toggle"}, "Toggle between playing and paused", core.CommandPlayPause},
	{"next", nil, "Skip to the next song", core.CommandNext},
	{"prev", []string{"previous"}, "Go back to the previous song", core.CommandPrev},
	{"random", []string{"shuffle"}, "Toggle random playback", core.CommandToggleRandom},
	{"repeat", nil, "Toggle repeat", core.CommandToggleRepeat},
}

func init() {
	for _, c := range controlCmds {
		command := c.command
		rootCmd.AddCommand(&cobra.Command{
			Use:     c.use,
			Aliases: c.aliases,
			Short:   c.short,
			Long: c.short + `.

The command is sent to the player service, then the player state is polled
once and the refreshed panel is printed.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runControl(cmd, command)
			},
		})
	}
}

func runControl(cmd *cobra.Command, command core.Command) error {
	session, screen, logger, err := oneShot()
	if err != nil {
		return err
	}
	// The session is never started: the dispatcher polls once after sending.
	defer func() { _ = logger.Sync() }()

	sendErr := session.Dispatcher.Dispatch(cmd.Context(), command)

	panel := screen.Panel()
	if err := printPanel(cmd.OutOrStdout(), panel); err != nil {
		return err
	}
	if sendErr != nil || panel.HasError() {
		return errReported
	}
	return nil
}
