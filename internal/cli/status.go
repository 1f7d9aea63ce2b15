package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the now-playing panel",
	Long: `Polls the player service once and prints the song title, artist and the
random/repeat/paused markers. Exits non-zero when the player reports an error
or cannot be reached.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	session, screen, logger, err := oneShot()
	if err != nil {
		return err
	}
	defer stopSession(session, logger)

	if err := session.Start(cmd.Context()); err != nil {
		return err
	}

	panel := screen.Panel()
	if err := printPanel(cmd.OutOrStdout(), panel); err != nil {
		return err
	}
	if panel.HasError() {
		return errReported
	}
	return nil
}
