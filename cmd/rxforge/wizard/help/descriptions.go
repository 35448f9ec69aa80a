package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"patient_name": {
		Title:       "PATIENT NAME",
		Description: "Full name of the patient as it should appear on the prescription.",
		Details:     "Printed in the patient information box on the document.",
	},
	"age": {
		Title:       "AGE",
		Description: "Patient age in completed years.",
		Details:     "Whole number between 0 and 120.",
	},
	"gender": {
		Title:       "GENDER",
		Description: "Patient gender.",
		Details:     "Printed next to the age, e.g. \"45 years / Male\".",
	},
	"contact": {
		Title:       "CONTACT NUMBER",
		Description: "Phone number for the patient.",
		Details:     "Digits, spaces and the characters + - ( ) are accepted.",
	},
	"visit_date": {
		Title:       "VISIT DATE",
		Description: "Date of the consultation.",
		Details:     "Format: YYYY-MM-DD. Printed as \"March 3, 2025\".",
	},
	"symptoms": {
		Title:       "SYMPTOMS",
		Description: "Presenting complaints, one per line.",
		Details:     "Each line becomes one bullet in the left column of the document.",
	},
	"diagnosis": {
		Title:       "DIAGNOSIS",
		Description: "Clinical assessment, one item per line.",
		Details:     "Each line becomes one bullet in the right column of the document.",
	},
	"med_name": {
		Title:       "MEDICATION NAME",
		Description: "Drug name, brand or generic.",
		Details:     "Start typing to get suggestions from the imported medicine catalog.",
	},
	"med_dosage": {
		Title:       "DOSAGE",
		Description: "Strength per dose.",
		Details:     "Examples: 500mg, 5ml, 1 tablet.",
	},
	"med_frequency": {
		Title:       "FREQUENCY",
		Description: "How often the dose is taken.",
		Details:     "Examples: Once daily, Twice daily, Every 8 hours.",
	},
	"med_route": {
		Title:       "ROUTE",
		Description: "Route of administration.",
		Details:     "Oral, IV, IM, SC, Topical, Inhalation and other standard routes.",
	},
	"med_duration": {
		Title:       "DURATION",
		Description: "How long the course runs.",
		Details:     "Examples: 5 days, 2 weeks, Until review.",
	},
	"med_instructions": {
		Title:       "INSTRUCTIONS",
		Description: "Additional directions for this medication.",
		Details:     "Examples: After food, Before bedtime. Optional.",
	},
	"advice": {
		Title:       "ADVICE",
		Description: "Non-pharmacological advice, one item per line.",
		Details:     "Rest, diet, hydration and similar guidance. At least one line.",
	},
	"lab_tests": {
		Title:       "LAB TESTS",
		Description: "Recommended investigations, one per line.",
		Details:     "Optional. Printed as a bulleted list.",
	},
	"follow_up": {
		Title:       "FOLLOW-UP DATE",
		Description: "When the patient should return.",
		Details:     "Format: YYYY-MM-DD. Optional.",
	},
	"notes": {
		Title:       "NOTES",
		Description: "Free-text additional notes.",
		Details:     "Optional. Printed as a paragraph near the end of the document.",
	},
	"clinic_name": {
		Title:       "CLINIC NAME",
		Description: "Name of the clinic or hospital.",
		Details:     "Shown on the letterhead when no header image is configured.",
	},
	"clinic_address": {
		Title:       "CLINIC ADDRESS",
		Description: "Postal address of the clinic.",
		Details:     "Printed in the letterhead block.",
	},
	"clinic_phone": {
		Title:       "CLINIC PHONE",
		Description: "Clinic phone number.",
		Details:     "Digits, spaces and the characters + - ( ) are accepted.",
	},
	"clinic_email": {
		Title:       "CLINIC EMAIL",
		Description: "Clinic email address.",
		Details:     "Optional. Validated when present.",
	},
	"header_image": {
		Title:       "HEADER IMAGE",
		Description: "Path to a letterhead image (PNG or JPEG).",
		Details:     "Scaled to the content width keeping its aspect ratio. If the file cannot be decoded the document falls back to a text letterhead.",
	},
	"doctor_name": {
		Title:       "DOCTOR NAME",
		Description: "Name of the prescriber.",
		Details:     "Printed above the signature line.",
	},
	"specialization": {
		Title:       "SPECIALIZATION",
		Description: "Medical specialty.",
		Details:     "Examples: General Medicine, Pediatrics, Cardiology.",
	},
	"license_number": {
		Title:       "LICENSE NUMBER",
		Description: "Medical council registration number.",
		Details:     "Printed under the doctor's name.",
	},
	"output_path": {
		Title:       "OUTPUT FILE",
		Description: "Where the generated PDF is written.",
		Details:     "Defaults to prescription.pdf in the current directory.",
	},
}
