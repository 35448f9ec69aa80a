package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of the wizard state. It lets a doctor keep the
// clinic letterhead and their own details in a file instead of retyping
// them every visit, and saves a full draft for later editing.
type Config struct {
	Doctor      DoctorConfigYAML     `yaml:"doctor"`
	Clinic      ClinicConfigYAML     `yaml:"clinic"`
	Patient     PatientConfigYAML    `yaml:"patient,omitempty"`
	Visit       VisitConfigYAML      `yaml:"visit,omitempty"`
	Medications []MedicationYAML     `yaml:"medications,omitempty"`
	Output      OutputConfigYAML     `yaml:"output,omitempty"`
}

// DoctorConfigYAML holds the prescriber's details.
type DoctorConfigYAML struct {
	Name           string `yaml:"name"`
	Specialization string `yaml:"specialization"`
	LicenseNumber  string `yaml:"license_number"`
}

// ClinicConfigYAML holds the letterhead details.
type ClinicConfigYAML struct {
	Name        string `yaml:"name"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email,omitempty"`
	HeaderImage string `yaml:"header_image,omitempty"`
}

// PatientConfigYAML holds the patient fields of a saved draft.
type PatientConfigYAML struct {
	Name    string `yaml:"name,omitempty"`
	Age     string `yaml:"age,omitempty"`
	Gender  string `yaml:"gender,omitempty"`
	Contact string `yaml:"contact,omitempty"`
	Address string `yaml:"address,omitempty"`
}

// VisitConfigYAML holds the clinical fields of a saved draft. The list
// fields are multi-line strings, one item per line.
type VisitConfigYAML struct {
	Date         string `yaml:"date,omitempty"`
	Symptoms     string `yaml:"symptoms,omitempty"`
	Diagnosis    string `yaml:"diagnosis,omitempty"`
	Advice       string `yaml:"advice,omitempty"`
	LabTests     string `yaml:"lab_tests,omitempty"`
	FollowUpDate string `yaml:"follow_up_date,omitempty"`
	Notes        string `yaml:"notes,omitempty"`
}

// MedicationYAML is one saved medication row.
type MedicationYAML struct {
	Name         string `yaml:"name"`
	Dosage       string `yaml:"dosage"`
	Frequency    string `yaml:"frequency"`
	Route        string `yaml:"route"`
	Duration     string `yaml:"duration"`
	Instructions string `yaml:"instructions,omitempty"`
}

// OutputConfigYAML holds the document settings.
type OutputConfigYAML struct {
	Path              string `yaml:"path,omitempty"`
	Watermark         bool   `yaml:"watermark,omitempty"`
	InlineMedications bool   `yaml:"inline_medications,omitempty"`
}

// SaveToYAML writes the wizard state to a YAML config file.
func SaveToYAML(state *State, path string) error {
	cfg := FromState(state)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadFromYAML reads a YAML config file into a wizard state.
func LoadFromYAML(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return ToState(&cfg), nil
}
