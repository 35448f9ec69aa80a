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

// MedicationOutcome is what the user chose to do after filling in a row.
type MedicationOutcome int

const (
	// MedicationContinue accepts the list and moves to the next step.
	MedicationContinue MedicationOutcome = iota
	// MedicationAddRow appends another empty row and edits it.
	MedicationAddRow
	// MedicationRemoveRow deletes the row being edited.
	MedicationRemoveRow
)

const (
	medActionContinue = "continue"
	medActionAdd      = "add"
	medActionRemove   = "remove"
)

// MedicationsScreen edits one medication row at a time. The row index and
// total let the title show progress through the list.
type MedicationsScreen struct {
	form        *huh.Form
	helpPanel   *components.HelpPanel
	row         *prescription.MedicationInput
	rowIndex    int
	totalRows   int
	errs        prescription.FieldErrors
	action      string
	done        bool
	cancelled   bool
	back        bool
	width       int
	height      int
}

// NewMedicationsScreen builds the form for one row. suggestions holds the
// medicine names from the imported catalog, used for autocompletion.
func NewMedicationsScreen(row *prescription.MedicationInput, rowIndex, totalRows int, suggestions []string, errs prescription.FieldErrors) *MedicationsScreen {
	if row.Route == "" {
		row.Route = prescription.Routes[0]
	}

	s := &MedicationsScreen{
		helpPanel: components.NewHelpPanel(),
		row:       row,
		rowIndex:  rowIndex,
		totalRows: totalRows,
		errs:      errs,
		action:    medActionContinue,
	}

	routeOptions := make([]huh.Option[string], len(prescription.Routes))
	for i, route := range prescription.Routes {
		routeOptions[i] = huh.NewOption(route, route)
	}

	actionOptions := []huh.Option[string]{
		huh.NewOption("Continue to advice", medActionContinue),
		huh.NewOption("Add another medication", medActionAdd),
	}
	if totalRows > 1 {
		actionOptions = append(actionOptions, huh.NewOption("Remove this medication", medActionRemove))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("med_name").
				Title("Medication Name").
				Suggestions(suggestions).
				Value(&row.Name).
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return fmt.Errorf("Medication name is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("med_dosage").
				Title("Dosage").
				Description("e.g. 500mg").
				Value(&row.Dosage),

			huh.NewInput().
				Key("med_frequency").
				Title("Frequency").
				Suggestions(prescription.Frequencies).
				Value(&row.Frequency),

			huh.NewSelect[string]().
				Key("med_route").
				Title("Route").
				Options(routeOptions...).
				Value(&row.Route),

			huh.NewInput().
				Key("med_duration").
				Title("Duration").
				Description("e.g. 5 days").
				Value(&row.Duration),

			huh.NewInput().
				Key("med_instructions").
				Title("Instructions").
				Description("Optional, e.g. After food").
				Value(&row.Instructions),

			huh.NewSelect[string]().
				Key("med_action").
				Title("Next").
				Options(actionOptions...).
				Value(&s.action),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *MedicationsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *MedicationsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.back = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *MedicationsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render(
		fmt.Sprintf("STEP 2/4 - MEDICATION %d/%d", s.rowIndex+1, s.totalRows))
	subtitle := components.SubtitleStyle.Render("What to prescribe and how to take it")

	sections := []string{title, subtitle}
	if errBlock := renderFieldErrors(s.errs); errBlock != "" {
		sections = append(sections, errBlock, "")
	}
	sections = append(sections,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Done returns true if the form was completed
func (s *MedicationsScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *MedicationsScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go to the previous step
func (s *MedicationsScreen) Back() bool { return s.back }

// Outcome returns the action chosen at the end of the row form
func (s *MedicationsScreen) Outcome() MedicationOutcome {
	switch s.action {
	case medActionAdd:
		return MedicationAddRow
	case medActionRemove:
		return MedicationRemoveRow
	default:
		return MedicationContinue
	}
}
