package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spinualexandru/clammy/internal/tray"
)

// popupCols is the popup overlay's inner width in terminal cells.
const popupCols = 26

// iconCellWidth is the rendered width of one bar icon (glyph plus padding),
// used to anchor the popup under its icon.
const iconCellWidth = 3

// View renders the bar line and, when a menu is open, the popup overlay
// anchored under its icon.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	base := m.renderBar()
	for line := 1; line < m.height; line++ {
		base += "\n"
	}

	if id, ok := m.popups.FirstOpen(); ok {
		if popup, ok := m.popups.Get(id); ok {
			content := m.renderPopup(popup)
			base = renderOverlay(base, content, 1, m.popupAnchor(popup.Address))
		}
	}

	return base
}

func (m Model) renderBar() string {
	icons := m.store.VisibleIcons()

	var cells []string
	for i, view := range icons {
		cells = append(cells, m.renderIcon(view, i == m.selected))
	}
	left := strings.Join(cells, "")
	if left == "" {
		left = placeholderStyle.Render("no tray items")
	}

	right := m.renderHints(icons)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return barStyle.Width(m.width).Render(left)
	}
	return barStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderIcon(view tray.IconView, selected bool) string {
	glyph := "●"
	style := iconStyle
	switch {
	case view.Icon == nil:
		glyph = "?"
		style = placeholderStyle
	case view.Custom:
		style = iconCustomStyle
	case view.MenuOpen:
		style = iconOpenStyle
	}
	if selected {
		style = iconSelectedStyle
	}
	return style.Render(glyph)
}

func (m Model) renderHints(icons []tray.IconView) string {
	if view, ok := m.selectedIcon(icons); ok && view.Tooltip != "" {
		return tooltipStyle.Render(view.Tooltip) + "  " +
			keyStyle.Render("m") + hintStyle.Render(" menu ") +
			keyStyle.Render("q") + hintStyle.Render(" quit")
	}
	return keyStyle.Render("q") + hintStyle.Render(" quit")
}

// renderPopup renders the open popup's box. The number of visible rows
// follows the eased animation progress, so the menu unrolls over the first
// frames after opening.
func (m Model) renderPopup(popup *tray.Popup) string {
	rows := flattenRows(popup.Items)
	if len(rows) == 0 {
		return popupStyle.Render(menuRowDisabledStyle.Render("(empty menu)"))
	}

	visible := int(math.Ceil(tray.Eased(popup.Progress) * float64(len(rows))))
	if visible < 1 {
		visible = 1
	}
	if visible > len(rows) {
		visible = len(rows)
	}

	lines := []string{popupTitleStyle.Render(truncate(m.popupTitle(popup.Address), popupCols))}
	for i := 0; i < visible; i++ {
		lines = append(lines, m.renderMenuRow(rows[i], i == m.menuCursor))
	}
	return popupStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMenuRow(row menuRow, selected bool) string {
	indent := strings.Repeat("  ", row.indent)

	if row.item.Separator {
		width := popupCols - len(indent)
		if width < 1 {
			width = 1
		}
		return menuSeparatorStyle.Render(indent + strings.Repeat("─", width))
	}

	prefix := "  "
	if row.item.Checkable {
		if row.item.Checked {
			prefix = menuCheckedStyle.Render("✓") + " "
		}
	}

	line := truncate(indent+prefix+row.item.Label, popupCols)
	if pad := popupCols - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}

	style := menuRowStyle
	if !row.item.Enabled {
		style = menuRowDisabledStyle
	}
	if selected && rowSelectable(row) {
		style = menuRowSelectedStyle
	}
	return style.Render(line)
}

func (m Model) popupTitle(address string) string {
	for _, view := range m.store.VisibleIcons() {
		if view.Address == address && view.Tooltip != "" {
			return view.Tooltip
		}
	}
	return address
}

// popupAnchor is the column the popup opens at: under its icon, pulled left
// when it would overflow the bar.
func (m Model) popupAnchor(address string) int {
	col := 0
	for i, view := range m.store.VisibleIcons() {
		if view.Address == address {
			col = i * iconCellWidth
			break
		}
	}
	if max := m.width - popupCols - 4; col > max {
		col = max
	}
	if col < 0 {
		col = 0
	}
	return col
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
