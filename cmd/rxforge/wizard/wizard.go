package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/components"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/screens"
	"github.com/mrsinham/rxforge/internal/layout"
	"github.com/mrsinham/rxforge/internal/layout/pdfenc"
	"github.com/mrsinham/rxforge/internal/prescription"
	"github.com/mrsinham/rxforge/internal/store"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhasePatient Phase = iota
	PhaseMedications
	PhaseAdvice
	PhaseClinic
	PhasePreview
	PhaseSaveConfig
	PhaseComplete
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *State
	flow  *Flow

	store       *store.Store
	ownerID     string
	suggestions []string

	// Current phase
	phase Phase

	// Screen instances
	patientScreen     *screens.PatientScreen
	medicationsScreen *screens.MedicationsScreen
	adviceScreen      *screens.AdviceScreen
	clinicScreen      *screens.ClinicScreen
	previewScreen     *screens.PreviewScreen
	completionScreen  *screens.CompletionScreen
	errorScreen       *screens.ErrorScreen

	// Which medication row is being edited
	currentRow int

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
	err       error
}

// Options configures a wizard run.
type Options struct {
	// State carries defaults loaded from a config file; nil starts empty.
	State *State
	// Store receives the finalized patient and prescription records.
	Store *store.Store
	// OwnerID scopes every record written during the run.
	OwnerID string
	// Suggestions holds medicine names for the autocomplete.
	Suggestions []string
}

// NewWizard creates a new wizard from the given options.
func NewWizard(opts Options) *Wizard {
	state := opts.State
	if state == nil {
		state = &State{}
	}
	if state.OutputPath == "" {
		state.OutputPath = "prescription.pdf"
	}

	w := &Wizard{
		state:       state,
		flow:        NewFlow(state.Input),
		store:       opts.Store,
		ownerID:     opts.OwnerID,
		suggestions: opts.Suggestions,
		phase:       PhasePatient,
	}
	w.prefillDoctorProfile()

	w.patientScreen = screens.NewPatientScreen(w.flow.Input(), nil)

	return w
}

// prefillDoctorProfile fills empty doctor and clinic fields from the stored
// profile, so a returning doctor only types their details once.
func (w *Wizard) prefillDoctorProfile() {
	if w.store == nil {
		return
	}
	profile, ok, err := w.store.GetDoctor(w.ownerID)
	if err != nil || !ok {
		return
	}

	in := w.flow.Input()
	if in.Doctor.Name == "" {
		in.Doctor.Name = profile.Name
		in.Doctor.Specialization = profile.Specialization
		in.Doctor.LicenseNumber = profile.LicenseNumber
	}
	if in.Clinic.Name == "" {
		in.Clinic.Name = profile.Clinic.Name
		in.Clinic.Address = profile.Clinic.Address
		in.Clinic.Phone = profile.Clinic.Phone
		in.Clinic.Email = profile.Clinic.Email
	}
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.patientScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhasePatient:
		return w.updatePatient(msg)
	case PhaseMedications:
		return w.updateMedications(msg)
	case PhaseAdvice:
		return w.updateAdvice(msg)
	case PhaseClinic:
		return w.updateClinic(msg)
	case PhasePreview:
		return w.updatePreview(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhasePatient:
		return w.patientScreen.View()
	case PhaseMedications:
		return w.medicationsScreen.View()
	case PhaseAdvice:
		return w.adviceScreen.View()
	case PhaseClinic:
		return w.clinicScreen.View()
	case PhasePreview:
		return w.previewScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// transitionTo moves the flow's current step onto the matching screen.
func (w *Wizard) transitionTo(step Step) tea.Cmd {
	switch step {
	case StepPatient:
		w.phase = PhasePatient
		w.patientScreen = screens.NewPatientScreen(w.flow.Input(), w.flow.Errors())
		return w.patientScreen.Init()
	case StepMedications:
		w.phase = PhaseMedications
		if w.currentRow >= len(w.flow.Input().Medications) {
			w.currentRow = len(w.flow.Input().Medications) - 1
		}
		w.medicationsScreen = screens.NewMedicationsScreen(
			&w.flow.Input().Medications[w.currentRow],
			w.currentRow,
			len(w.flow.Input().Medications),
			w.suggestions,
			w.flow.Errors(),
		)
		return w.medicationsScreen.Init()
	case StepAdvice:
		w.phase = PhaseAdvice
		w.adviceScreen = screens.NewAdviceScreen(w.flow.Input(), w.flow.Errors())
		return w.adviceScreen.Init()
	case StepClinic:
		w.phase = PhaseClinic
		w.clinicScreen = screens.NewClinicScreen(w.flow.Input(), &w.state.HeaderImagePath, w.flow.Errors())
		return w.clinicScreen.Init()
	case StepPreview:
		w.phase = PhasePreview
		w.previewScreen = screens.NewPreviewScreen(w.flow.Input(), w.state.OutputPath)
		return w.previewScreen.Init()
	}
	return nil
}

// updatePatient handles updates in the patient phase.
func (w *Wizard) updatePatient(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.patientScreen.Update(msg)
	if ps, ok := model.(*screens.PatientScreen); ok {
		w.patientScreen = ps
	}

	if w.patientScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.patientScreen.Done() {
		w.flow.Advance()
		return w, w.transitionTo(w.flow.Step())
	}

	return w, cmd
}

// updateMedications handles updates in the medications phase.
func (w *Wizard) updateMedications(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.medicationsScreen.Update(msg)
	if ms, ok := model.(*screens.MedicationsScreen); ok {
		w.medicationsScreen = ms
	}

	if w.medicationsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.medicationsScreen.Back() {
		if w.currentRow > 0 {
			w.currentRow--
			return w, w.transitionTo(StepMedications)
		}
		w.flow.Retreat()
		return w, w.transitionTo(w.flow.Step())
	}

	if w.medicationsScreen.Done() {
		switch w.medicationsScreen.Outcome() {
		case screens.MedicationAddRow:
			w.currentRow = w.flow.AddMedicationRow()
			return w, w.transitionTo(StepMedications)

		case screens.MedicationRemoveRow:
			if err := w.flow.RemoveMedicationRow(w.currentRow); err == nil && w.currentRow > 0 {
				w.currentRow--
			}
			// The form always shows a row to edit.
			if len(w.flow.Input().Medications) == 0 {
				w.currentRow = w.flow.AddMedicationRow()
			}
			return w, w.transitionTo(StepMedications)

		case screens.MedicationContinue:
			w.flow.Advance()
			return w, w.transitionTo(w.flow.Step())
		}
	}

	return w, cmd
}

// updateAdvice handles updates in the advice phase.
func (w *Wizard) updateAdvice(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.adviceScreen.Update(msg)
	if as, ok := model.(*screens.AdviceScreen); ok {
		w.adviceScreen = as
	}

	if w.adviceScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.adviceScreen.Back() {
		w.flow.Retreat()
		return w, w.transitionTo(w.flow.Step())
	}

	if w.adviceScreen.Done() {
		w.flow.Advance()
		return w, w.transitionTo(w.flow.Step())
	}

	return w, cmd
}

// updateClinic handles updates in the clinic phase.
func (w *Wizard) updateClinic(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.clinicScreen.Update(msg)
	if cs, ok := model.(*screens.ClinicScreen); ok {
		w.clinicScreen = cs
	}

	if w.clinicScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.clinicScreen.Back() {
		w.flow.Retreat()
		return w, w.transitionTo(w.flow.Step())
	}

	if w.clinicScreen.Done() {
		w.loadHeaderImage()
		w.flow.Advance()
		return w, w.transitionTo(w.flow.Step())
	}

	return w, cmd
}

// loadHeaderImage reads the letterhead file into the input. A missing or
// unreadable file just leaves the image empty; the document falls back to
// the text letterhead.
func (w *Wizard) loadHeaderImage() {
	w.flow.Input().HeaderImage = nil
	if w.state.HeaderImagePath == "" {
		return
	}
	data, err := os.ReadFile(w.state.HeaderImagePath)
	if err != nil {
		return
	}
	w.flow.Input().HeaderImage = data
}

// updatePreview handles updates in the preview phase.
func (w *Wizard) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.CompletionMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.previewScreen.Update(msg)
	if ps, ok := model.(*screens.PreviewScreen); ok {
		w.previewScreen = ps
	}

	if w.previewScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.previewScreen.Done() {
		switch w.previewScreen.Action() {
		case screens.PreviewActionBack:
			// Editing resumes at the last step; values are kept.
			w.flow.Retreat()
			return w, w.transitionTo(w.flow.Step())

		case screens.PreviewActionGenerate:
			return w, w.startFinalize()

		case screens.PreviewActionSaveConfig:
			return w, w.transitionToSaveConfig()

		case screens.PreviewActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

// startFinalize persists the records, writes the PDF and reports back.
func (w *Wizard) startFinalize() tea.Cmd {
	return func() tea.Msg {
		startTime := time.Now()

		var pages int
		result, err := w.flow.Finalize(FinalizeDeps{
			Store:   w.store,
			OwnerID: w.ownerID,
			Render: func(draft prescription.Draft) ([]byte, error) {
				doc := layout.NewEngine(w.layoutOptions(draft)).Render(draft)
				pages = len(doc.Pages)
				return pdfenc.Encode(doc)
			},
		})
		if err != nil {
			// Field errors mean a step was skipped or edited behind the
			// preview; send the user back to fix them.
			if errs, ok := err.(prescription.FieldErrors); ok {
				return screens.ErrorMsg{Error: errs}
			}
			return screens.ErrorMsg{Error: err}
		}

		if err := os.WriteFile(w.state.OutputPath, result.Document, 0o644); err != nil {
			return screens.ErrorMsg{Error: fmt.Errorf("writing %s: %w", w.state.OutputPath, err)}
		}

		return screens.CompletionMsg{
			OutputPath:     w.state.OutputPath,
			Size:           int64(len(result.Document)),
			Pages:          pages,
			PrescriptionID: result.Prescription.ID,
			Duration:       time.Since(startTime),
		}
	}
}

// layoutOptions derives the engine options from the wizard settings.
func (w *Wizard) layoutOptions(draft prescription.Draft) layout.Options {
	opts := layout.DefaultOptions()
	opts.Watermark = w.state.Watermark
	opts.InlineMedications = w.state.InlineMedications
	if len(draft.Doctor.Clinic.HeaderImage) == 0 {
		opts.HeaderStyle = layout.HeaderStyleText
	}
	return opts
}

// transitionToSaveConfig shows the save config dialog.
func (w *Wizard) transitionToSaveConfig() tea.Cmd {
	w.phase = PhaseSaveConfig
	w.configPath = "rxforge-config.yaml"

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save draft to").
				Description("Enter the path for the YAML config file").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return w, w.transitionTo(StepPreview)
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		w.state.Input = *w.flow.Input()
		if err := SaveToYAML(w.state, w.configPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}
		return w, w.transitionTo(StepPreview)
	}

	return w, cmd
}

// viewSaveConfig renders the save config dialog.
func (w *Wizard) viewSaveConfig() string {
	title := components.TitleStyle.Render("Save Draft")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		w.saveConfigForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)

	return content
}

// updateComplete handles updates in the completion phase.
func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if cs, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = cs
	}

	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// updateError handles updates in the error phase.
func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// Run starts the interactive wizard. If fromConfig is non-empty the initial
// state is loaded from that YAML file.
func Run(fromConfig string, runOpts Options) error {
	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		// CLI flags on top of the file settings win.
		if runOpts.State != nil {
			if runOpts.State.OutputPath != "" {
				loaded.OutputPath = runOpts.State.OutputPath
			}
			loaded.Watermark = loaded.Watermark || runOpts.State.Watermark
			loaded.InlineMedications = loaded.InlineMedications || runOpts.State.InlineMedications
		}
		runOpts.State = loaded
	}

	wizard := NewWizard(runOpts)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil // User cancelled, not an error
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}
