package wizard

import (
	"fmt"

	"github.com/mrsinham/rxforge/internal/prescription"
	"github.com/mrsinham/rxforge/internal/store"
)

// Step identifies one of the data-entry steps, plus the final preview.
type Step int

const (
	StepPatient Step = iota
	StepMedications
	StepAdvice
	StepClinic
	StepPreview
)

// String returns the step title as shown in the UI.
func (s Step) String() string {
	switch s {
	case StepPatient:
		return "Patient"
	case StepMedications:
		return "Medications"
	case StepAdvice:
		return "Advice"
	case StepClinic:
		return "Clinic"
	case StepPreview:
		return "Preview"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Flow is the form state machine behind the wizard: four validated entry
// steps followed by a preview. It is independent of the TUI so the same
// transitions drive both the interactive screens and tests.
type Flow struct {
	step  Step
	input prescription.Input
	errs  prescription.FieldErrors
}

// NewFlow starts a flow at the patient step with one empty medication row.
func NewFlow(initial prescription.Input) *Flow {
	if len(initial.Medications) == 0 {
		initial.Medications = []prescription.MedicationInput{{}}
	}
	return &Flow{step: StepPatient, input: initial}
}

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// Input exposes the collected fields for the screens to bind to.
func (f *Flow) Input() *prescription.Input { return &f.input }

// Errors returns the field errors from the last failed Advance, keyed by
// field path. It is nil after a successful transition.
func (f *Flow) Errors() prescription.FieldErrors { return f.errs }

// Advance validates the current step and, if it passes, moves forward.
// On failure the flow stays put and the field errors are retained.
func (f *Flow) Advance() bool {
	if f.step >= StepPreview {
		return false
	}
	if err := prescription.ValidateStep(int(f.step), f.input); err != nil {
		f.errs = err.(prescription.FieldErrors)
		return false
	}
	f.errs = nil
	f.step++
	return true
}

// Retreat moves back one step. Entered values are kept; nothing is
// validated on the way back.
func (f *Flow) Retreat() bool {
	if f.step == StepPatient {
		return false
	}
	f.errs = nil
	f.step--
	return true
}

// AddMedicationRow appends an empty row and returns its index.
func (f *Flow) AddMedicationRow() int {
	f.input.Medications = append(f.input.Medications, prescription.MedicationInput{})
	return len(f.input.Medications) - 1
}

// RemoveMedicationRow deletes the row at i. Removing the last row leaves an
// empty list; Advance then fails on the medications field rather than the
// removal itself being refused.
func (f *Flow) RemoveMedicationRow(i int) error {
	if i < 0 || i >= len(f.input.Medications) {
		return fmt.Errorf("no medication row %d", i)
	}
	f.input.Medications = append(f.input.Medications[:i], f.input.Medications[i+1:]...)
	return nil
}

// FinalizeDeps carries what Finalize needs: the record store, the owner the
// records belong to, and the renderer producing the document bytes.
type FinalizeDeps struct {
	Store   *store.Store
	OwnerID string
	Render  func(prescription.Draft) ([]byte, error)
}

// FinalizeResult is the outcome of a successful finalization.
type FinalizeResult struct {
	Patient      store.Patient
	Prescription store.Prescription
	Document     []byte
}

// Finalize validates the whole input, renders the document and persists the
// patient and prescription records. It is only available from the preview. The document is rendered before anything
// is written, so a render failure leaves the store untouched; if the
// prescription insert fails after the patient was created, the patient
// record is deleted again so no orphan remains.
func (f *Flow) Finalize(deps FinalizeDeps) (FinalizeResult, error) {
	if f.step != StepPreview {
		return FinalizeResult{}, fmt.Errorf("finalize is only available from the preview")
	}

	draft, err := prescription.Normalize(f.input)
	if err != nil {
		f.errs = err.(prescription.FieldErrors)
		return FinalizeResult{}, err
	}

	pdf, err := deps.Render(draft)
	if err != nil {
		return FinalizeResult{}, err
	}

	patient, err := deps.Store.CreatePatient(deps.OwnerID, draft.Patient)
	if err != nil {
		return FinalizeResult{}, err
	}
	rec, err := deps.Store.CreatePrescription(deps.OwnerID, patient.ID, draft)
	if err != nil {
		if delErr := deps.Store.DeletePatient(deps.OwnerID, patient.ID); delErr != nil {
			return FinalizeResult{}, fmt.Errorf("%w (and unwinding patient record: %v)", err, delErr)
		}
		return FinalizeResult{}, err
	}

	// Remember the doctor and clinic details for the next run. Best-effort:
	// the prescription is already durable.
	clinic := draft.Doctor.Clinic
	clinic.HeaderImage = nil
	_ = deps.Store.PutDoctor(store.Doctor{
		OwnerID:        deps.OwnerID,
		Name:           draft.Doctor.Name,
		Specialization: draft.Doctor.Specialization,
		LicenseNumber:  draft.Doctor.LicenseNumber,
		Clinic:         clinic,
	})

	return FinalizeResult{Patient: patient, Prescription: rec, Document: pdf}, nil
}
