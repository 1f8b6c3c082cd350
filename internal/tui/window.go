package tui

import (
	"github.com/google/uuid"

	"github.com/spinualexandru/clammy/internal/tray"
)

// overlayWindowManager implements tray.WindowManager for the terminal,
// where popups are drawn as overlays on the bar's own surface instead of
// real windows. Only the opaque id matters here; the requested geometry is
// honored by the view's fixed popup width and row cap.
type overlayWindowManager struct{}

func newOverlayWindowManager() *overlayWindowManager {
	return &overlayWindowManager{}
}

func (w *overlayWindowManager) OpenPopup(size tray.Size, dir tray.Direction) tray.WindowID {
	return tray.WindowID(uuid.NewString())
}

func (w *overlayWindowManager) ClosePopup(id tray.WindowID) {}
