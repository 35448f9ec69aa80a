// Package wizard provides an interactive TUI for composing a prescription.
package wizard

import "github.com/mrsinham/rxforge/internal/prescription"

// State holds everything the wizard collects across its screens, plus the
// output settings chosen up front.
type State struct {
	Input prescription.Input

	// Output settings.
	OutputPath        string
	Watermark         bool
	InlineMedications bool
	HeaderImagePath   string
}
