// Package cli implements the clammy CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/spinualexandru/clammy/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "clammy",
	Short: "A status bar with a StatusNotifierItem tray host",
	Long: `Clammy is a desktop status bar. It hosts third-party tray icons over
the StatusNotifierItem protocol, renders their menus, and forwards clicks
back to the owning applications.

Running clammy with no subcommand starts the bar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
