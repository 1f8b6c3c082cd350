package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Bar styles.
var (
	barStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	iconStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Padding(0, 1)

	iconSelectedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Padding(0, 1).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	iconOpenStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true).
			Padding(0, 1)

	iconCustomStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Padding(0, 1)

	tooltipStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Popup styles.
var (
	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(0, 1)

	popupTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	menuRowStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	menuRowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	menuRowDisabledStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	menuSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	menuCheckedStyle = lipgloss.NewStyle().
				Foreground(colorGreen)
)

// Key hint styles for the bar's right edge.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)
