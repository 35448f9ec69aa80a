package components

import "github.com/charmbracelet/lipgloss"

// Shared styles for the prescription step screens.
var (
	// TitleStyle renders the "STEP n/4" banner above each form.
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63")).
		MarginBottom(1)

	// SubtitleStyle renders the one-line step description under the banner.
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		MarginBottom(1)

	// ErrorTextStyle highlights field validation messages on the preview.
	ErrorTextStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))
)
