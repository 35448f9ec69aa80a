package prescription

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldError reports a single invalid field. Path addresses the field the way
// the form does, including nested paths ("clinicInfo.phone") and indexed rows
// ("medications.2.dosage").
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// FieldErrors collects every invalid field of a validation pass, at most one
// message per field path.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = p + ": " + e[p]
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) add(path, message string) {
	if _, ok := e[path]; !ok {
		e[path] = message
	}
}

// orNil returns nil for an empty set so callers can test err == nil.
func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// dateLayout is the wire format for dates entered in forms and config files.
const dateLayout = "2006-01-02"

// Input holds the raw field values collected by the wizard before
// normalization. Free-text list fields (Symptoms, Diagnosis, Advice,
// LabTests) are multi-line strings; Age and the dates are unparsed strings so
// coercion errors surface as field errors rather than panics.
type Input struct {
	Name      string
	Age       string
	Gender    string
	Contact   string
	Address   string
	VisitDate string

	Symptoms  string
	Diagnosis string

	Medications []MedicationInput

	Advice       string
	LabTests     string
	FollowUpDate string
	Notes        string

	Clinic ClinicInput
	Doctor DoctorInput

	HeaderImage []byte
}

// MedicationInput is one unvalidated medication row.
type MedicationInput struct {
	Name         string
	Dosage       string
	Frequency    string
	Route        string
	Duration     string
	Instructions string
}

// ClinicInput holds the raw clinic fields.
type ClinicInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// DoctorInput holds the raw doctor fields.
type DoctorInput struct {
	Name           string
	Specialization string
	LicenseNumber  string
}

// ValidatePatientStep checks the patient step fields. It returns nil or a
// FieldErrors value with one message per invalid field.
func ValidatePatientStep(in Input) error {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "Patient name is required")
	}
	validateAge(in.Age, errs)
	if !Gender(in.Gender).IsValid() {
		errs.add("gender", "Gender is required")
	}
	if strings.TrimSpace(in.Contact) == "" {
		errs.add("contact", "Contact number is required")
	} else if !phonePattern.MatchString(in.Contact) {
		errs.add("contact", "Please enter a valid phone number")
	}
	if strings.TrimSpace(in.VisitDate) == "" {
		errs.add("visitDate", "Visit date is required")
	} else if _, err := time.Parse(dateLayout, in.VisitDate); err != nil {
		errs.add("visitDate", "Invalid date format, use YYYY-MM-DD")
	}
	if len(SplitLines(in.Symptoms)) == 0 {
		errs.add("symptoms", "Symptoms are required")
	}
	if len(SplitLines(in.Diagnosis)) == 0 {
		errs.add("diagnosis", "Diagnosis is required")
	}

	return errs.orNil()
}

func validateAge(raw string, errs FieldErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.add("age", "Age is required")
		return
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		errs.add("age", "Age must be a whole number")
		return
	}
	if age < 0 {
		errs.add("age", "Age must be a positive number")
		return
	}
	if age > 120 {
		errs.add("age", "Age must be 120 or less")
	}
}

// ValidateMedicationsStep checks every medication row. An empty list is
// itself an error: a prescription without medications must not advance to the
// later steps.
func ValidateMedicationsStep(in Input) error {
	errs := FieldErrors{}

	if len(in.Medications) == 0 {
		errs.add("medications", "At least one medication is required")
	}

	for i, med := range in.Medications {
		prefix := fmt.Sprintf("medications.%d.", i)
		if strings.TrimSpace(med.Name) == "" {
			errs.add(prefix+"name", "Medication name is required")
		}
		if strings.TrimSpace(med.Dosage) == "" {
			errs.add(prefix+"dosage", "Dosage is required")
		}
		if strings.TrimSpace(med.Frequency) == "" {
			errs.add(prefix+"frequency", "Frequency is required")
		}
		if med.Route == "" {
			errs.add(prefix+"route", "Route is required")
		} else if !IsValidRoute(med.Route) {
			errs.add(prefix+"route", "Unknown route of administration")
		}
		if strings.TrimSpace(med.Duration) == "" {
			errs.add(prefix+"duration", "Duration is required")
		}
	}

	return errs.orNil()
}

// ValidateAdviceStep checks the advice step. Only the non-pharmacological
// advice is mandatory; lab tests, follow-up and notes are optional.
func ValidateAdviceStep(in Input) error {
	errs := FieldErrors{}

	if len(SplitLines(in.Advice)) == 0 {
		errs.add("nonPharmacologicalAdvice", "Please provide some non-pharmacological advice")
	}
	if strings.TrimSpace(in.FollowUpDate) != "" {
		if _, err := time.Parse(dateLayout, in.FollowUpDate); err != nil {
			errs.add("followUpDate", "Invalid date format, use YYYY-MM-DD")
		}
	}

	return errs.orNil()
}

// ValidateClinicStep checks the clinic and doctor fields.
func ValidateClinicStep(in Input) error {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Clinic.Name) == "" {
		errs.add("clinicInfo.name", "Clinic name is required")
	}
	if strings.TrimSpace(in.Clinic.Address) == "" {
		errs.add("clinicInfo.address", "Address is required")
	}
	if strings.TrimSpace(in.Clinic.Phone) == "" {
		errs.add("clinicInfo.phone", "Phone number is required")
	} else if !phonePattern.MatchString(in.Clinic.Phone) {
		errs.add("clinicInfo.phone", "Please enter a valid phone number")
	}
	if in.Clinic.Email != "" && !emailPattern.MatchString(in.Clinic.Email) {
		errs.add("clinicInfo.email", "Invalid email address")
	}
	if strings.TrimSpace(in.Doctor.Name) == "" {
		errs.add("doctorInfo.name", "Doctor name is required")
	}
	if strings.TrimSpace(in.Doctor.Specialization) == "" {
		errs.add("doctorInfo.specialization", "Specialization is required")
	}
	if strings.TrimSpace(in.Doctor.LicenseNumber) == "" {
		errs.add("doctorInfo.licenseNumber", "License number is required")
	}

	return errs.orNil()
}

// stepValidators runs in wizard step order.
var stepValidators = []func(Input) error{
	ValidatePatientStep,
	ValidateMedicationsStep,
	ValidateAdviceStep,
	ValidateClinicStep,
}

// ValidateStep validates a single wizard step (0-based). Out-of-range steps
// validate the whole input.
func ValidateStep(step int, in Input) error {
	if step >= 0 && step < len(stepValidators) {
		return stepValidators[step](in)
	}
	return ValidateDraft(in)
}

// NumSteps is the number of data-entry steps the validators cover.
const NumSteps = 4

// ValidateDraft runs every step validator and merges the results.
func ValidateDraft(in Input) error {
	errs := FieldErrors{}
	for _, validate := range stepValidators {
		if err := validate(in); err != nil {
			for path, msg := range err.(FieldErrors) {
				errs.add(path, msg)
			}
		}
	}
	return errs.orNil()
}

// Normalize validates the complete input and converts it into a Draft:
// free-text fields become itemized lists, age and dates are parsed, and the
// gender is canonicalized. The returned error, if any, is a FieldErrors.
func Normalize(in Input) (Draft, error) {
	if err := ValidateDraft(in); err != nil {
		return Draft{}, err
	}

	age, _ := strconv.Atoi(strings.TrimSpace(in.Age))
	visitDate, _ := time.Parse(dateLayout, in.VisitDate)

	draft := Draft{
		Doctor: DoctorInfo{
			Name:           strings.TrimSpace(in.Doctor.Name),
			Specialization: strings.TrimSpace(in.Doctor.Specialization),
			LicenseNumber:  strings.TrimSpace(in.Doctor.LicenseNumber),
			Clinic: ClinicInfo{
				Name:        strings.TrimSpace(in.Clinic.Name),
				Address:     strings.TrimSpace(in.Clinic.Address),
				Phone:       strings.TrimSpace(in.Clinic.Phone),
				Email:       strings.TrimSpace(in.Clinic.Email),
				HeaderImage: in.HeaderImage,
			},
		},
		Patient: PatientInfo{
			Name:    strings.TrimSpace(in.Name),
			Age:     age,
			Gender:  Gender(in.Gender),
			Contact: strings.TrimSpace(in.Contact),
			Address: strings.TrimSpace(in.Address),
		},
		VisitDate: visitDate,
		Symptoms:  SplitLines(in.Symptoms),
		Diagnosis: SplitLines(in.Diagnosis),
		Advice:    SplitLines(in.Advice),
		LabTests:  SplitLines(in.LabTests),
		Notes:     strings.TrimSpace(in.Notes),
	}

	draft.Medications = make([]MedicationEntry, len(in.Medications))
	for i, med := range in.Medications {
		draft.Medications[i] = MedicationEntry{
			Name:         strings.TrimSpace(med.Name),
			Dosage:       strings.TrimSpace(med.Dosage),
			Frequency:    strings.TrimSpace(med.Frequency),
			Route:        med.Route,
			Duration:     strings.TrimSpace(med.Duration),
			Instructions: strings.TrimSpace(med.Instructions),
		}
	}

	if strings.TrimSpace(in.FollowUpDate) != "" {
		followUp, _ := time.Parse(dateLayout, in.FollowUpDate)
		draft.FollowUpDate = &followUp
	}

	return draft, nil
}
