package tui

import "github.com/spinualexandru/clammy/internal/tray"

// trayEventMsg carries one event from the listener's bounded channel onto
// the foreground.
type trayEventMsg struct {
	Event tray.Event
}

// popupTickMsg advances popup open animations.
type popupTickMsg struct{}
