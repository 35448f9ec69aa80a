package prescription

import (
	"fmt"
	"strings"
	"testing"
)

// validInput returns an input that passes every step validator.
func validInput() Input {
	return Input{
		Name:      "John Smith",
		Age:       "45",
		Gender:    "male",
		Contact:   "(555) 111-2222",
		VisitDate: "2025-03-03",
		Symptoms:  "Fever\nHeadache",
		Diagnosis: "Viral infection",
		Medications: []MedicationInput{
			{
				Name:      "Amoxicillin",
				Dosage:    "500mg",
				Frequency: "Three times daily",
				Route:     "Oral",
				Duration:  "7 days",
			},
		},
		Advice: "Rest\nDrink fluids",
		Clinic: ClinicInput{
			Name:    "HealthCare Medical Center",
			Address: "123 Medical Avenue",
			Phone:   "(555) 987-6543",
			Email:   "info@healthcaremedical.com",
		},
		Doctor: DoctorInput{
			Name:           "Dr. Sarah Johnson",
			Specialization: "Internal Medicine",
			LicenseNumber:  "MED123456",
		},
	}
}

func TestValidateDraft_ValidInput(t *testing.T) {
	if err := ValidateDraft(validInput()); err != nil {
		t.Fatalf("ValidateDraft failed on valid input: %v", err)
	}
}

func TestValidatePatientStep_AgeBoundaries(t *testing.T) {
	cases := []struct {
		age   string
		valid bool
	}{
		{"0", true},
		{"120", true},
		{"-1", false},
		{"121", false},
		{"45", true},
		{"", false},
		{"abc", false},
		{"4.5", false},
	}

	for _, tc := range cases {
		in := validInput()
		in.Age = tc.age

		err := ValidatePatientStep(in)
		if tc.valid && err != nil {
			t.Errorf("age %q should be accepted, got %v", tc.age, err)
		}
		if !tc.valid {
			if err == nil {
				t.Errorf("age %q should be rejected", tc.age)
				continue
			}
			if _, ok := err.(FieldErrors)["age"]; !ok {
				t.Errorf("age %q: expected error on field 'age', got %v", tc.age, err)
			}
		}
	}
}

func TestValidatePatientStep_EmptySymptoms(t *testing.T) {
	for _, symptoms := range []string{"", "   ", "\n\n", "  \n  \n"} {
		in := validInput()
		in.Symptoms = symptoms

		err := ValidatePatientStep(in)
		if err == nil {
			t.Fatalf("symptoms %q should be rejected", symptoms)
		}
		if msg, ok := err.(FieldErrors)["symptoms"]; !ok {
			t.Errorf("expected error keyed by 'symptoms', got %v", err)
		} else if msg != "Symptoms are required" {
			t.Errorf("unexpected message: %q", msg)
		}
	}
}

func TestValidatePatientStep_PhonePattern(t *testing.T) {
	cases := []struct {
		contact string
		valid   bool
	}{
		{"(555) 111-2222", true},
		{"+44 20 7946 0958", true},
		{"555-ABCD", false},
		{"call me", false},
	}

	for _, tc := range cases {
		in := validInput()
		in.Contact = tc.contact
		err := ValidatePatientStep(in)
		if tc.valid != (err == nil) {
			t.Errorf("contact %q: valid=%v, got err=%v", tc.contact, tc.valid, err)
		}
	}
}

func TestValidateMedicationsStep_EmptyListBlocks(t *testing.T) {
	in := validInput()
	in.Medications = nil

	err := ValidateMedicationsStep(in)
	if err == nil {
		t.Fatal("empty medication list should not validate")
	}
	if _, ok := err.(FieldErrors)["medications"]; !ok {
		t.Errorf("expected error keyed by 'medications', got %v", err)
	}
}

func TestValidateMedicationsStep_RowFields(t *testing.T) {
	in := validInput()
	in.Medications = append(in.Medications, MedicationInput{
		Name:  "Ibuprofen",
		Route: "Oral",
		// dosage, frequency, duration missing
	})

	err := ValidateMedicationsStep(in)
	if err == nil {
		t.Fatal("incomplete row should not validate")
	}

	errs := err.(FieldErrors)
	for _, path := range []string{
		"medications.1.dosage",
		"medications.1.frequency",
		"medications.1.duration",
	} {
		if _, ok := errs[path]; !ok {
			t.Errorf("expected error on %s, got %v", path, errs)
		}
	}
	if _, ok := errs["medications.0.name"]; ok {
		t.Error("complete row 0 should not produce errors")
	}
}

func TestValidateMedicationsStep_RouteVocabulary(t *testing.T) {
	for _, route := range Routes {
		in := validInput()
		in.Medications[0].Route = route
		if err := ValidateMedicationsStep(in); err != nil {
			t.Errorf("route %q should be accepted: %v", route, err)
		}
	}

	in := validInput()
	in.Medications[0].Route = "Intrathecal"
	if err := ValidateMedicationsStep(in); err == nil {
		t.Error("unknown route should be rejected")
	}
}

func TestValidateClinicStep_NestedPaths(t *testing.T) {
	in := validInput()
	in.Clinic.Phone = ""
	in.Doctor.LicenseNumber = ""

	err := ValidateClinicStep(in)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	errs := err.(FieldErrors)
	if errs["clinicInfo.phone"] != "Phone number is required" {
		t.Errorf("clinicInfo.phone: got %q", errs["clinicInfo.phone"])
	}
	if errs["doctorInfo.licenseNumber"] != "License number is required" {
		t.Errorf("doctorInfo.licenseNumber: got %q", errs["doctorInfo.licenseNumber"])
	}
}

func TestValidateClinicStep_OptionalEmail(t *testing.T) {
	in := validInput()
	in.Clinic.Email = ""
	if err := ValidateClinicStep(in); err != nil {
		t.Errorf("empty email should be accepted: %v", err)
	}

	in.Clinic.Email = "not-an-email"
	if err := ValidateClinicStep(in); err == nil {
		t.Error("malformed email should be rejected")
	}
}

func TestValidateAdviceStep_FollowUpDate(t *testing.T) {
	in := validInput()
	in.FollowUpDate = "2025-03-17"
	if err := ValidateAdviceStep(in); err != nil {
		t.Errorf("valid follow-up date rejected: %v", err)
	}

	in.FollowUpDate = "17/03/2025"
	if err := ValidateAdviceStep(in); err == nil {
		t.Error("malformed follow-up date should be rejected")
	}
}

func TestSplitLines_Idempotent(t *testing.T) {
	inputs := []string{
		"Fever\nHeadache\nFatigue",
		"  Fever  \n\n  Headache\n   \nFatigue   ",
		"single line",
		"\n\n\n",
		"",
	}

	for _, input := range inputs {
		first := SplitLines(input)
		second := SplitLines(strings.Join(first, "\n"))

		if len(first) != len(second) {
			t.Fatalf("input %q: lengths differ (%d vs %d)", input, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("input %q: item %d differs (%q vs %q)", input, i, first[i], second[i])
			}
		}
		for i, line := range first {
			if strings.TrimSpace(line) != line || line == "" {
				t.Errorf("input %q: item %d not trimmed/non-empty: %q", input, i, line)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	in := validInput()
	in.FollowUpDate = "2025-03-17"
	in.Notes = "  Re-check blood pressure.  "

	draft, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if draft.Patient.Age != 45 {
		t.Errorf("age: got %d", draft.Patient.Age)
	}
	if draft.Patient.Gender != GenderMale {
		t.Errorf("gender: got %q", draft.Patient.Gender)
	}
	if got := FormatDate(draft.VisitDate); got != "March 3, 2025" {
		t.Errorf("visit date: got %q", got)
	}
	if len(draft.Symptoms) != 2 || draft.Symptoms[0] != "Fever" {
		t.Errorf("symptoms: got %v", draft.Symptoms)
	}
	if draft.FollowUpDate == nil {
		t.Fatal("follow-up date missing")
	}
	if got := FormatDate(*draft.FollowUpDate); got != "March 17, 2025" {
		t.Errorf("follow-up date: got %q", got)
	}
	if draft.Notes != "Re-check blood pressure." {
		t.Errorf("notes: got %q", draft.Notes)
	}
	if len(draft.Medications) != 1 {
		t.Fatalf("medications: got %d", len(draft.Medications))
	}
}

func TestNormalize_InvalidInput(t *testing.T) {
	in := validInput()
	in.Age = "200"
	in.Diagnosis = ""

	_, err := Normalize(in)
	if err == nil {
		t.Fatal("Normalize should fail on invalid input")
	}

	errs, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if len(errs) != 2 {
		t.Errorf("expected 2 field errors, got %v", errs)
	}
}

func TestFieldErrors_ErrorMessage(t *testing.T) {
	errs := FieldErrors{
		"clinicInfo.phone": "Phone number is required",
		"age":              "Age is required",
	}
	// Sorted by path for stable output.
	want := "age: Age is required; clinicInfo.phone: Phone number is required"
	if errs.Error() != want {
		t.Errorf("got %q, want %q", errs.Error(), want)
	}
}

func TestGenderDisplay(t *testing.T) {
	cases := map[Gender]string{
		GenderMale:   "Male",
		GenderFemale: "Female",
		GenderOther:  "Other",
	}
	for g, want := range cases {
		if got := g.Display(); got != want {
			t.Errorf("%q.Display() = %q, want %q", g, got, want)
		}
	}
}

func TestValidateStep_CoversAllSteps(t *testing.T) {
	if len(stepValidators) != NumSteps {
		t.Fatalf("NumSteps (%d) out of sync with validators (%d)", NumSteps, len(stepValidators))
	}

	in := Input{} // everything missing
	for step := 0; step < NumSteps; step++ {
		if err := ValidateStep(step, in); err == nil {
			t.Errorf("step %d should reject empty input", step)
		}
	}
}

func ExampleSplitLines() {
	fmt.Println(SplitLines("Fever\n\n  Headache  \n"))
	// Output: [Fever Headache]
}
