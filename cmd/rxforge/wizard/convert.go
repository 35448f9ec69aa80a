package wizard

import (
	"github.com/mrsinham/rxforge/internal/prescription"
)

// FromState converts the wizard state into its YAML form.
func FromState(s *State) *Config {
	in := s.Input

	cfg := &Config{
		Doctor: DoctorConfigYAML{
			Name:           in.Doctor.Name,
			Specialization: in.Doctor.Specialization,
			LicenseNumber:  in.Doctor.LicenseNumber,
		},
		Clinic: ClinicConfigYAML{
			Name:        in.Clinic.Name,
			Address:     in.Clinic.Address,
			Phone:       in.Clinic.Phone,
			Email:       in.Clinic.Email,
			HeaderImage: s.HeaderImagePath,
		},
		Patient: PatientConfigYAML{
			Name:    in.Name,
			Age:     in.Age,
			Gender:  in.Gender,
			Contact: in.Contact,
			Address: in.Address,
		},
		Visit: VisitConfigYAML{
			Date:         in.VisitDate,
			Symptoms:     in.Symptoms,
			Diagnosis:    in.Diagnosis,
			Advice:       in.Advice,
			LabTests:     in.LabTests,
			FollowUpDate: in.FollowUpDate,
			Notes:        in.Notes,
		},
		Output: OutputConfigYAML{
			Path:              s.OutputPath,
			Watermark:         s.Watermark,
			InlineMedications: s.InlineMedications,
		},
	}

	for _, med := range in.Medications {
		// Skip rows the user never touched.
		if med.Name == "" && med.Dosage == "" {
			continue
		}
		cfg.Medications = append(cfg.Medications, MedicationYAML(med))
	}

	return cfg
}

// ToState converts a loaded YAML config into a wizard state.
func ToState(cfg *Config) *State {
	s := &State{
		Input: prescription.Input{
			Name:      cfg.Patient.Name,
			Age:       cfg.Patient.Age,
			Gender:    cfg.Patient.Gender,
			Contact:   cfg.Patient.Contact,
			Address:   cfg.Patient.Address,
			VisitDate: cfg.Visit.Date,

			Symptoms:  cfg.Visit.Symptoms,
			Diagnosis: cfg.Visit.Diagnosis,

			Advice:       cfg.Visit.Advice,
			LabTests:     cfg.Visit.LabTests,
			FollowUpDate: cfg.Visit.FollowUpDate,
			Notes:        cfg.Visit.Notes,

			Clinic: prescription.ClinicInput{
				Name:    cfg.Clinic.Name,
				Address: cfg.Clinic.Address,
				Phone:   cfg.Clinic.Phone,
				Email:   cfg.Clinic.Email,
			},
			Doctor: prescription.DoctorInput{
				Name:           cfg.Doctor.Name,
				Specialization: cfg.Doctor.Specialization,
				LicenseNumber:  cfg.Doctor.LicenseNumber,
			},
		},
		OutputPath:        cfg.Output.Path,
		Watermark:         cfg.Output.Watermark,
		InlineMedications: cfg.Output.InlineMedications,
		HeaderImagePath:   cfg.Clinic.HeaderImage,
	}

	for _, med := range cfg.Medications {
		s.Input.Medications = append(s.Input.Medications, prescription.MedicationInput(med))
	}

	return s
}
