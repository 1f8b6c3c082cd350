package tray

// Popup geometry and animation constants. Row height and padding mirror the
// bar's menu styling; the tick step opens a popup in seven 16ms frames.
const (
	PopupRowHeight = 28
	PopupPadding   = 16

	// PopupChromeHeight is the extra window height above the menu body:
	// the offset from the bar's midline plus the connector tab.
	PopupChromeHeight = 22

	// PopupMaxHeight caps popup windows for very long menus.
	PopupMaxHeight = 400

	// PopupWidth is the fixed popup window width.
	PopupWidth = 200

	popupTickStep = 0.15
)

// WindowID is the opaque identifier the host environment assigns to a popup
// window. The manager keys popups by it, independent of tray addresses.
type WindowID string

// Popup is the state of one ephemeral menu window: the owning address, a
// snapshot of its menu captured at open time, and linear animation
// progress. Later menu updates on the address do not affect an open popup.
type Popup struct {
	Address       string
	Items         []MenuItem
	Progress      float64
	ContentHeight float64
}

// VisibleHeight is the eased, animation-derived height to render this
// frame. Progress itself stays linear so ticking remains resumable.
func (p *Popup) VisibleHeight() float64 {
	h := p.ContentHeight * Eased(p.Progress)
	if h < 1 {
		return 1
	}
	return h
}

// Eased applies the ease-out quadratic curve used at render time.
func Eased(progress float64) float64 {
	return 1 - (1-progress)*(1-progress)
}

// MenuHeight is the popup body height for a row count.
func MenuHeight(rows int) int {
	return rows*PopupRowHeight + PopupPadding
}

// Manager owns popup state keyed by window id. Like the store it lives on
// the foreground and is not safe for concurrent use.
type Manager struct {
	popups map[WindowID]*Popup
	order  []WindowID
}

// NewManager returns an empty popup manager.
func NewManager() *Manager {
	return &Manager{popups: make(map[WindowID]*Popup)}
}

// Open registers a popup for a window id, snapshotting the menu items. The
// animation starts at zero progress.
func (m *Manager) Open(id WindowID, address string, items []MenuItem) {
	snapshot := make([]MenuItem, len(items))
	copy(snapshot, items)
	if _, exists := m.popups[id]; !exists {
		m.order = append(m.order, id)
	}
	m.popups[id] = &Popup{
		Address:       address,
		Items:         snapshot,
		ContentHeight: float64(MenuHeight(len(snapshot))),
	}
}

// Get returns the popup for a window id.
func (m *Manager) Get(id WindowID) (*Popup, bool) {
	p, ok := m.popups[id]
	return p, ok
}

// Close drops a popup's state. Closing is instantaneous; only opening is
// animated. Unknown ids are a no-op.
func (m *Manager) Close(id WindowID) {
	if _, ok := m.popups[id]; !ok {
		return
	}
	delete(m.popups, id)
	for i, wid := range m.order {
		if wid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// CloseForAddress drops every popup owned by an address and returns their
// window ids so the caller can tell the window manager. Used when the
// owning tray item is removed: a removed item must not leave a dangling
// popup.
func (m *Manager) CloseForAddress(address string) []WindowID {
	var closed []WindowID
	for _, id := range m.order {
		if m.popups[id].Address == address {
			closed = append(closed, id)
		}
	}
	for _, id := range closed {
		m.Close(id)
	}
	return closed
}

// FirstOpen returns the first open popup in open order, for the
// cancellation key. With several popups open, open order decides which
// one the cancel key hits.
func (m *Manager) FirstOpen() (WindowID, bool) {
	if len(m.order) == 0 {
		return "", false
	}
	return m.order[0], true
}

// Len is the number of open popups.
func (m *Manager) Len() int {
	return len(m.popups)
}

// Animating reports whether any popup still has progress to gain. The UI
// only schedules ticks while this holds, avoiding idle redraws.
func (m *Manager) Animating() bool {
	for _, p := range m.popups {
		if p.Progress < 1 {
			return true
		}
	}
	return false
}

// Tick advances every in-progress popup by one step, clamped to 1. It
// returns whether another tick is needed.
func (m *Manager) Tick() bool {
	for _, p := range m.popups {
		if p.Progress < 1 {
			p.Progress += popupTickStep
			if p.Progress > 1 {
				p.Progress = 1
			}
		}
	}
	return m.Animating()
}
