package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorTitle  = lipgloss.Color("11") // bright yellow
	colorSun    = lipgloss.Color("3")  // yellow
	colorMuted  = lipgloss.Color("8")  // dim gray
	colorAlert  = lipgloss.Color("1")  // red
	colorOK     = lipgloss.Color("2")  // green
	colorPaused = lipgloss.Color("6")  // cyan

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorSun)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorAlert).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colorOK)

	pausedStyle = lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAlert)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)
