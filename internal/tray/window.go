package tray

// Size is a desired popup window size in pixels.
type Size struct {
	Width  int
	Height int
}

// Direction is the preferred screen-relative direction a popup opens in.
type Direction int

const (
	DirectionDown Direction = iota
	DirectionUp
)

// WindowManager is the window management boundary. The host environment
// assigns the opaque window id; closing is fire-and-forget by that same id.
type WindowManager interface {
	OpenPopup(size Size, dir Direction) WindowID
	ClosePopup(id WindowID)
}

// PopupSize computes the window size for a menu with the given row count:
// the body height plus chrome, capped at PopupMaxHeight.
func PopupSize(rows int) Size {
	height := MenuHeight(rows) + PopupChromeHeight
	if height > PopupMaxHeight {
		height = PopupMaxHeight
	}
	return Size{Width: PopupWidth, Height: height}
}
