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

// ClinicScreen collects the letterhead details: clinic, doctor and the
// optional header image path.
type ClinicScreen struct {
	form            *huh.Form
	helpPanel       *components.HelpPanel
	input           *prescription.Input
	headerImagePath *string
	errs            prescription.FieldErrors
	done            bool
	cancelled       bool
	back            bool
	width           int
	height          int
}

// NewClinicScreen creates the clinic step form. headerImagePath is bound
// separately because the image is loaded from disk after the form completes.
func NewClinicScreen(input *prescription.Input, headerImagePath *string, errs prescription.FieldErrors) *ClinicScreen {
	s := &ClinicScreen{
		helpPanel:       components.NewHelpPanel(),
		input:           input,
		headerImagePath: headerImagePath,
		errs:            errs,
	}

	required := func(message string) func(string) error {
		return func(str string) error {
			if strings.TrimSpace(str) == "" {
				return fmt.Errorf("%s", message)
			}
			return nil
		}
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("clinic_name").
				Title("Clinic Name").
				Value(&input.Clinic.Name).
				Validate(required("Clinic name is required")),

			huh.NewInput().
				Key("clinic_address").
				Title("Clinic Address").
				Value(&input.Clinic.Address).
				Validate(required("Address is required")),

			huh.NewInput().
				Key("clinic_phone").
				Title("Clinic Phone").
				Value(&input.Clinic.Phone).
				Validate(required("Phone number is required")),

			huh.NewInput().
				Key("clinic_email").
				Title("Clinic Email").
				Description("Optional").
				Value(&input.Clinic.Email),

			huh.NewInput().
				Key("header_image").
				Title("Header Image").
				Description("Path to a PNG or JPEG letterhead, optional").
				Value(headerImagePath),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("doctor_name").
				Title("Doctor Name").
				Value(&input.Doctor.Name).
				Validate(required("Doctor name is required")),

			huh.NewInput().
				Key("specialization").
				Title("Specialization").
				Value(&input.Doctor.Specialization).
				Validate(required("Specialization is required")),

			huh.NewInput().
				Key("license_number").
				Title("License Number").
				Value(&input.Doctor.LicenseNumber).
				Validate(required("License number is required")),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *ClinicScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *ClinicScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *ClinicScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("STEP 4/4 - CLINIC & DOCTOR")
	subtitle := components.SubtitleStyle.Render("What appears on the letterhead")

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
func (s *ClinicScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *ClinicScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go to the previous step
func (s *ClinicScreen) Back() bool { return s.back }
