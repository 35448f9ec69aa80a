package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/components"
	"github.com/mrsinham/rxforge/internal/prescription"
)

// PatientScreen collects the patient details and the presenting complaint.
type PatientScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	input     *prescription.Input
	errs      prescription.FieldErrors
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewPatientScreen creates the patient step form bound to the shared input.
// errs carries the field errors from a previous failed advance, if any.
func NewPatientScreen(input *prescription.Input, errs prescription.FieldErrors) *PatientScreen {
	if input.VisitDate == "" {
		input.VisitDate = time.Now().Format("2006-01-02")
	}
	if input.Gender == "" {
		input.Gender = string(prescription.GenderMale)
	}

	s := &PatientScreen{
		helpPanel: components.NewHelpPanel(),
		input:     input,
		errs:      errs,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("patient_name").
				Title("Patient Name").
				Value(&input.Name).
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return fmt.Errorf("Patient name is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("age").
				Title("Age").
				Value(&input.Age).
				Validate(validateAge),

			huh.NewSelect[string]().
				Key("gender").
				Title("Gender").
				Options(
					huh.NewOption("Male", string(prescription.GenderMale)),
					huh.NewOption("Female", string(prescription.GenderFemale)),
					huh.NewOption("Other", string(prescription.GenderOther)),
				).
				Value(&input.Gender),

			huh.NewInput().
				Key("contact").
				Title("Contact Number").
				Value(&input.Contact),

			huh.NewInput().
				Key("address").
				Title("Address").
				Description("Optional").
				Value(&input.Address),

			huh.NewInput().
				Key("visit_date").
				Title("Visit Date").
				Description("Format: YYYY-MM-DD").
				Value(&input.VisitDate).
				Validate(validateDate),

			huh.NewText().
				Key("symptoms").
				Title("Symptoms").
				Description("One per line").
				Value(&input.Symptoms),

			huh.NewText().
				Key("diagnosis").
				Title("Diagnosis").
				Description("One per line").
				Value(&input.Diagnosis),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func validateAge(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Age is required")
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("Age must be a whole number")
	}
	if age < 0 {
		return fmt.Errorf("Age must be a positive number")
	}
	if age > 120 {
		return fmt.Errorf("Age must be 120 or less")
	}
	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("Invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// Init implements tea.Model
func (s *PatientScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *PatientScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
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
func (s *PatientScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("STEP 1/4 - PATIENT")
	subtitle := components.SubtitleStyle.Render("Who the prescription is for")

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
		"Tab: Next field | Enter: Submit | Esc: Cancel",
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Done returns true if the form was completed
func (s *PatientScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *PatientScreen) Cancelled() bool { return s.cancelled }
