package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spinualexandru/clammy/internal/sni"
	"github.com/spinualexandru/clammy/internal/tray"
)

// tickInterval is the popup animation frame period.
const tickInterval = 16 * time.Millisecond

// runListenerCmd drives the protocol listener for the lifetime of the
// subscription. It returns no message; the listener's output arrives
// through its events channel instead.
func runListenerCmd(l *tray.Listener) tea.Cmd {
	return func() tea.Msg {
		l.Run()
		return nil
	}
}

// waitForTrayEvent blocks on the listener channel for one event. Update
// re-arms it after every delivery, so events are consumed strictly in
// arrival order and backpressure lands on the listener, never here.
func waitForTrayEvent(events <-chan tray.Event) tea.Cmd {
	return func() tea.Msg {
		return trayEventMsg{Event: <-events}
	}
}

// dispatchActivations sends activation requests on the listener's bounded
// channel. Sends may block, which is why this runs as a command and never
// inside Update.
func dispatchActivations(ch chan<- sni.ActivateRequest, reqs []sni.ActivateRequest) tea.Cmd {
	return func() tea.Msg {
		for _, req := range reqs {
			ch <- req
		}
		return nil
	}
}

func popupTick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return popupTickMsg{}
	})
}
