package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/help"
)

var (
	helpPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Width(46)

	helpTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	helpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	helpDetailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Italic(true)
)

// HelpPanel shows prescribing guidance for the focused form field.
type HelpPanel struct {
	fieldKey string
	width    int
	height   int
}

// NewHelpPanel creates an empty panel sized for the step forms.
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{
		width:  46,
		height: 12,
	}
}

// SetField switches the guidance to the given field key.
func (h *HelpPanel) SetField(key string) {
	h.fieldKey = key
}

// SetSize updates panel dimensions.
func (h *HelpPanel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the guidance panel shown beside the form.
func (h *HelpPanel) View() string {
	style := helpPanelStyle.Width(h.width - 4) // Compute locally, don't mutate global

	text, ok := help.Texts[h.fieldKey]
	if !ok {
		return style.Render(helpDetailStyle.Render("Prescribing guidance appears here"))
	}

	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render("℞ " + text.Title))
	sb.WriteString("\n\n")
	sb.WriteString(helpDescStyle.Render(text.Description))
	if text.Details != "" {
		sb.WriteString("\n\n")
		sb.WriteString(helpDetailStyle.Render(text.Details))
	}

	return style.Render(sb.String())
}
