package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/tui"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Start the interactive campus app",
	Long: `Start the interactive campus app.

The app restores your stored session and lands you on the screen for your
role. Running campusctl with no arguments does the same thing.

Examples:
  campusctl app`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, client, err := newManager()
		if err != nil {
			return err
		}
		return tui.Run(mgr, client)
	},
}

func init() {
	rootCmd.AddCommand(appCmd)
}
