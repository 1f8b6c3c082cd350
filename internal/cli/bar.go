package cli

import (
	"github.com/spf13/cobra"

	"github.com/spinualexandru/clammy/internal/tui"
)

var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Start the bar",
	Long: `Start the bar in the current terminal.

The bar registers itself as a StatusNotifierHost on the session bus and
shows tray icons of running applications. Without a session bus the bar
still runs, just without tray icons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}
