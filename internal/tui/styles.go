package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7D56F4")
	green   = lipgloss.Color("#04B575")
	red     = lipgloss.Color("#FF4D4D")
	amber   = lipgloss.Color("#F5A623")
	grey    = lipgloss.Color("#888888")
	dim     = lipgloss.Color("#666666")
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1)

	// Section headers in reports
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1)

	// Coordinates and other identifiers
	SelectedStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	// Warnings such as dynamic versions
	WarningStyle = lipgloss.NewStyle().
			Foreground(amber)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(dim)

	// Description styling
	DescStyle = lipgloss.NewStyle().
			Foreground(grey).
			Italic(true)
)
