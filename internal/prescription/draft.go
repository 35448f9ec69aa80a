// Package prescription defines the prescription draft model assembled by the
// wizard and consumed by the layout engine, together with its validation
// rules.
package prescription

import (
	"strings"
	"time"
)

// Gender is the patient gender vocabulary.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether g is one of the three accepted values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Display returns the gender capitalized for rendering ("Male", "Female",
// "Other").
func (g Gender) Display() string {
	s := string(g)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ClinicInfo holds the clinic letterhead data printed at the top of a
// prescription.
type ClinicInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string

	// HeaderImage is an optional raw image (JPEG or PNG bytes) rendered as a
	// full-width letterhead banner. A nil or undecodable image is skipped at
	// render time.
	HeaderImage []byte
}

// DoctorInfo identifies the prescribing doctor.
type DoctorInfo struct {
	Name           string
	Specialization string
	LicenseNumber  string
	Clinic         ClinicInfo
}

// PatientInfo holds the patient block of a draft.
type PatientInfo struct {
	Name    string
	Age     int
	Gender  Gender
	Contact string
	Address string
}

// MedicationEntry is one prescribed medication row.
type MedicationEntry struct {
	Name         string
	Dosage       string
	Frequency    string
	Route        string
	Duration     string
	Instructions string
}

// Draft is the complete in-memory prescription assembled by the wizard. The
// itemized list fields (Symptoms, Diagnosis, Advice, LabTests) hold trimmed,
// non-empty lines only; use SplitLines to derive them from free text.
type Draft struct {
	Doctor    DoctorInfo
	Patient   PatientInfo
	VisitDate time.Time

	Symptoms  []string
	Diagnosis []string

	Medications []MedicationEntry

	Advice       []string
	LabTests     []string
	FollowUpDate *time.Time
	Notes        string
}

// SplitLines normalizes a multi-line free-text field into an itemized list:
// split on newlines, trim each line, drop blanks. Splitting the rejoined
// result again yields the same list.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FormatDate renders a date as "Month D, YYYY" (e.g. "March 3, 2025"), the
// single date format used across the printed document.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
