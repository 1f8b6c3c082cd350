package tui

import tea "github.com/charmbracelet/bubbletea"

// Widget is the contract bar widgets render through. The tray is wired into
// the model directly; battery/clock style widgets plug in here.
type Widget interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
}
