package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/vortex/internal/browser"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the player web page",
	Long:  `Open server.base_url in the default browser.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := browser.Open(cfg.Server.BaseURL); err != nil {
			return err
		}
		if Verbose() {
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", cfg.Server.BaseURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
