package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/components"
	"github.com/mrsinham/rxforge/internal/prescription"
)

// AdviceScreen collects the non-pharmacological advice, lab tests, the
// follow-up date and free notes.
type AdviceScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	input     *prescription.Input
	errs      prescription.FieldErrors
	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewAdviceScreen creates the advice step form bound to the shared input.
func NewAdviceScreen(input *prescription.Input, errs prescription.FieldErrors) *AdviceScreen {
	s := &AdviceScreen{
		helpPanel: components.NewHelpPanel(),
		input:     input,
		errs:      errs,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("advice").
				Title("Non-pharmacological Advice").
				Description("One per line").
				Value(&input.Advice).
				Validate(func(str string) error {
					if len(prescription.SplitLines(str)) == 0 {
						return fmt.Errorf("Please provide some non-pharmacological advice")
					}
					return nil
				}),

			huh.NewText().
				Key("lab_tests").
				Title("Recommended Lab Tests").
				Description("One per line, optional").
				Value(&input.LabTests),

			huh.NewInput().
				Key("follow_up").
				Title("Follow-up Date").
				Description("Format: YYYY-MM-DD, optional").
				Value(&input.FollowUpDate).
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", str); err != nil {
						return fmt.Errorf("Invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewText().
				Key("notes").
				Title("Additional Notes").
				Description("Optional").
				Value(&input.Notes),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *AdviceScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *AdviceScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *AdviceScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("STEP 3/4 - ADVICE")
	subtitle := components.SubtitleStyle.Render("Lab tests, follow-up and general advice")

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
func (s *AdviceScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *AdviceScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go to the previous step
func (s *AdviceScreen) Back() bool { return s.back }
