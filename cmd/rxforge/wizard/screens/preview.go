package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/components"
	"github.com/mrsinham/rxforge/internal/prescription"
)

// PreviewAction represents the action selected on the preview screen
type PreviewAction int

const (
	// PreviewActionBack returns to the previous step for editing
	PreviewActionBack PreviewAction = iota
	// PreviewActionGenerate finalizes the prescription and writes the PDF
	PreviewActionGenerate
	// PreviewActionSaveConfig saves the draft to a YAML file
	PreviewActionSaveConfig
	// PreviewActionCancel exits the wizard
	PreviewActionCancel
)

const (
	actionBack       = "back"
	actionGenerate   = "generate"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

var (
	previewPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	previewTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true).
		MarginBottom(1)

	previewLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	previewValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)

	previewListStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
)

// PreviewScreen shows the complete prescription before it is finalized.
type PreviewScreen struct {
	form       *huh.Form
	input      *prescription.Input
	outputPath string
	action     string
	done       bool
	cancelled  bool
	width      int
	height     int
}

// NewPreviewScreen creates the preview with everything entered so far.
func NewPreviewScreen(input *prescription.Input, outputPath string) *PreviewScreen {
	s := &PreviewScreen{
		input:      input,
		outputPath: outputPath,
		action:     actionGenerate,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Generate prescription PDF", actionGenerate),
					huh.NewOption("Save draft to YAML", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *PreviewScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *PreviewScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *PreviewScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("PREVIEW - Review Prescription")

	leftPanel := s.buildPatientPanel()
	rightPanel := s.buildMedicationsPanel()

	panelWidth := 45
	leftStyled := previewPanelStyle.Width(panelWidth).Render(leftPanel)
	rightStyled := previewPanelStyle.Width(panelWidth).Render(rightPanel)
	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftStyled, "  ", rightStyled)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		panels,
		"",
		s.buildOutputLine(),
		"",
		s.form.View(),
		"",
		"Enter: Select action | Esc: Back",
	)

	return content
}

// buildPatientPanel builds the left panel with patient and visit details.
func (s *PreviewScreen) buildPatientPanel() string {
	var sb strings.Builder

	sb.WriteString(previewTitleStyle.Render("Patient"))
	sb.WriteString("\n\n")

	gender := prescription.Gender(s.input.Gender).Display()
	params := []struct {
		label string
		value string
	}{
		{"Name", s.input.Name},
		{"Age / Gender", fmt.Sprintf("%s years / %s", s.input.Age, gender)},
		{"Contact", s.input.Contact},
		{"Visit Date", s.input.VisitDate},
	}
	for _, p := range params {
		sb.WriteString(previewLabelStyle.Render(p.label + ": "))
		sb.WriteString(previewValueStyle.Render(p.value))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(previewTitleStyle.Render("Symptoms"))
	sb.WriteString("\n")
	writeBullets(&sb, prescription.SplitLines(s.input.Symptoms))

	sb.WriteString("\n")
	sb.WriteString(previewTitleStyle.Render("Diagnosis"))
	sb.WriteString("\n")
	writeBullets(&sb, prescription.SplitLines(s.input.Diagnosis))

	return sb.String()
}

// buildMedicationsPanel builds the right panel with the medication list and
// the advice summary.
func (s *PreviewScreen) buildMedicationsPanel() string {
	var sb strings.Builder

	sb.WriteString(previewTitleStyle.Render("Medications"))
	sb.WriteString("\n\n")

	for i, med := range s.input.Medications {
		sb.WriteString(previewValueStyle.Render(fmt.Sprintf("%d. %s %s", i+1, med.Name, med.Dosage)))
		sb.WriteString("\n")
		detail := fmt.Sprintf("   %s, %s, %s", med.Frequency, med.Route, med.Duration)
		sb.WriteString(previewLabelStyle.Render(detail))
		sb.WriteString("\n")
		if med.Instructions != "" {
			sb.WriteString(previewLabelStyle.Render("   " + med.Instructions))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(previewTitleStyle.Render("Advice"))
	sb.WriteString("\n")
	writeBullets(&sb, prescription.SplitLines(s.input.Advice))

	if s.input.FollowUpDate != "" {
		sb.WriteString("\n")
		sb.WriteString(previewLabelStyle.Render("Follow-up: "))
		sb.WriteString(previewValueStyle.Render(s.input.FollowUpDate))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, item := range items {
		sb.WriteString(previewListStyle.Render("• " + item))
		sb.WriteString("\n")
	}
}

// buildOutputLine shows where the PDF will be written.
func (s *PreviewScreen) buildOutputLine() string {
	return previewLabelStyle.Render("Output: ") + previewValueStyle.Render(s.outputPath)
}

// Done returns true if the form was completed
func (s *PreviewScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *PreviewScreen) Cancelled() bool { return s.cancelled }

// Action returns the selected action
func (s *PreviewScreen) Action() PreviewAction {
	switch s.action {
	case actionBack:
		return PreviewActionBack
	case actionGenerate:
		return PreviewActionGenerate
	case actionSaveConfig:
		return PreviewActionSaveConfig
	case actionCancel:
		return PreviewActionCancel
	default:
		return PreviewActionGenerate
	}
}
