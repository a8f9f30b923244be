package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorAccent = lipgloss.Color("39")  // blue
	colorMuted  = lipgloss.Color("242") // gray
	colorError  = lipgloss.Color("196") // red
	colorMatch  = lipgloss.Color("214") // orange
	colorWhite  = lipgloss.Color("15")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(colorWhite).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	matchStyle = lipgloss.NewStyle().
			Foreground(colorMatch).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorMatch).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	confirmStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
