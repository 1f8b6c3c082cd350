package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/spinualexandru/clammy/internal/tray"
)

// Model is the root Bubbletea model for the bar. It owns the tray store,
// the popup manager, and the window manager; every mutation of foreground
// state happens inside Update.
type Model struct {
	store    *tray.Store
	popups   *tray.Manager
	windows  tray.WindowManager
	listener *tray.Listener
	log      *zap.Logger

	width  int
	height int

	// Bar icon cursor and popup row cursor.
	selected   int
	menuCursor int

	// Whether an animation tick is scheduled.
	ticking bool
}

// NewModel creates the initial bar model.
func NewModel(listener *tray.Listener, log *zap.Logger) Model {
	return Model{
		store:    tray.NewStore(),
		popups:   tray.NewManager(),
		windows:  newOverlayWindowManager(),
		listener: listener,
		log:      log,
	}
}

// Init starts the listener and arms the first event wait.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		runListenerCmd(m.listener),
		waitForTrayEvent(m.listener.Events()),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.armTick(&cmds)
		return m, tea.Batch(cmds...)

	case trayEventMsg:
		// Re-arm before anything else so the pump never stalls.
		cmds = append(cmds, waitForTrayEvent(m.listener.Events()))

		if removed, ok := msg.Event.(tray.ItemRemoved); ok {
			for _, id := range m.popups.CloseForAddress(removed.Address) {
				m.windows.ClosePopup(id)
			}
		}

		if reqs := m.store.Apply(msg.Event); len(reqs) > 0 {
			cmds = append(cmds, dispatchActivations(m.store.Activations(), reqs))
		}

		m.clampSelection()
		return m, tea.Batch(cmds...)

	case popupTickMsg:
		if m.popups.Tick() {
			cmds = append(cmds, popupTick())
		} else {
			m.ticking = false
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// armTick schedules an animation tick if something animates and no tick is
// already in flight.
func (m *Model) armTick(cmds *[]tea.Cmd) {
	if !m.ticking && m.popups.Animating() {
		m.ticking = true
		*cmds = append(*cmds, popupTick())
	}
}

// handleKey routes key events. An open popup captures navigation keys; the
// quit binding always works.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, barKeys.Quit) {
		return tea.Quit
	}

	if id, ok := m.popups.FirstOpen(); ok {
		return m.handlePopupKey(msg, id)
	}
	return m.handleBarKey(msg)
}

func (m *Model) handleBarKey(msg tea.KeyMsg) tea.Cmd {
	icons := m.store.VisibleIcons()

	switch {
	case key.Matches(msg, barKeys.Left):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, barKeys.Right):
		if m.selected < len(icons)-1 {
			m.selected++
		}

	case key.Matches(msg, barKeys.Activate):
		view, ok := m.selectedIcon(icons)
		if !ok || view.Custom {
			return nil
		}
		// A left click on an item with a menu opens the menu instead of
		// activating; the plain activation intent never reaches the store.
		if m.store.HasMenu(view.Address) {
			return m.toggleMenu(view.Address)
		}
		return m.applyIntent(tray.LeftClick{Address: view.Address})

	case key.Matches(msg, barKeys.Menu):
		view, ok := m.selectedIcon(icons)
		if !ok || view.Custom {
			return nil
		}
		return m.toggleMenu(view.Address)
	}
	return nil
}

func (m *Model) handlePopupKey(msg tea.KeyMsg, id tray.WindowID) tea.Cmd {
	popup, ok := m.popups.Get(id)
	if !ok {
		return nil
	}
	rows := flattenRows(popup.Items)

	switch {
	case key.Matches(msg, popupKeys.Cancel):
		// Cancellation closes the window only. The store's open-menu
		// marker is left alone; the next right click toggles it off.
		m.popups.Close(id)
		m.windows.ClosePopup(id)

	case key.Matches(msg, popupKeys.Up):
		m.menuCursor = prevSelectable(rows, m.menuCursor)

	case key.Matches(msg, popupKeys.Down):
		m.menuCursor = nextSelectable(rows, m.menuCursor)

	case key.Matches(msg, popupKeys.Select):
		if m.menuCursor < 0 || m.menuCursor >= len(rows) {
			return nil
		}
		row := rows[m.menuCursor]
		if !rowSelectable(row) {
			return nil
		}
		m.popups.Close(id)
		m.windows.ClosePopup(id)
		return m.applyIntent(tray.MenuItemClick{Address: popup.Address, ID: row.item.ID})
	}
	return nil
}

// applyIntent feeds a user intent through the store and turns any returned
// activation requests into an off-foreground dispatch command.
func (m *Model) applyIntent(ev tray.Event) tea.Cmd {
	reqs := m.store.Apply(ev)
	if len(reqs) == 0 {
		return nil
	}
	return dispatchActivations(m.store.Activations(), reqs)
}

// toggleMenu applies a right-click intent and reconciles popup windows with
// the store's open-menu marker.
func (m *Model) toggleMenu(address string) tea.Cmd {
	cmd := m.applyIntent(tray.RightClick{Address: address})
	m.reconcilePopups()
	return cmd
}

// reconcilePopups makes the open popup window agree with the store's
// open-menu marker: closes a popup the marker no longer covers, opens one
// where the marker points.
func (m *Model) reconcilePopups() {
	open := m.store.OpenMenu()

	if id, ok := m.popups.FirstOpen(); ok {
		popup, _ := m.popups.Get(id)
		if popup.Address == open {
			return
		}
		m.popups.Close(id)
		m.windows.ClosePopup(id)
	}

	if open == "" {
		return
	}

	items := m.store.GetMenuItems(open)
	rows := flattenRows(items)
	id := m.windows.OpenPopup(tray.PopupSize(len(rows)), tray.DirectionDown)
	m.popups.Open(id, open, items)
	m.menuCursor = firstSelectable(rows)
}

func (m *Model) selectedIcon(icons []tray.IconView) (tray.IconView, bool) {
	if m.selected < 0 || m.selected >= len(icons) {
		return tray.IconView{}, false
	}
	return icons[m.selected], true
}

// clampSelection keeps the bar cursor valid as items come and go.
func (m *Model) clampSelection() {
	n := len(m.store.VisibleIcons())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
}

// menuRow is one rendered popup line: a menu item with its nesting depth.
type menuRow struct {
	item   tray.MenuItem
	indent int
}

// flattenRows turns a menu tree into the popup's display rows, children
// indented under their parent.
func flattenRows(items []tray.MenuItem) []menuRow {
	var rows []menuRow
	var walk func(items []tray.MenuItem, indent int)
	walk = func(items []tray.MenuItem, indent int) {
		for _, item := range items {
			rows = append(rows, menuRow{item: item, indent: indent})
			walk(item.Children, indent+1)
		}
	}
	walk(items, 0)
	return rows
}

func rowSelectable(r menuRow) bool {
	return !r.item.Separator && r.item.Enabled
}

func firstSelectable(rows []menuRow) int {
	for i, r := range rows {
		if rowSelectable(r) {
			return i
		}
	}
	return 0
}

func nextSelectable(rows []menuRow, from int) int {
	for i := from + 1; i < len(rows); i++ {
		if rowSelectable(rows[i]) {
			return i
		}
	}
	return from
}

func prevSelectable(rows []menuRow, from int) int {
	for i := from - 1; i >= 0; i-- {
		if rowSelectable(rows[i]) {
			return i
		}
	}
	return from
}
