package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/rxforge/cmd/rxforge/wizard"
	"github.com/mrsinham/rxforge/internal/catalog"
	"github.com/mrsinham/rxforge/internal/layout"
	"github.com/mrsinham/rxforge/internal/layout/pdfenc"
	"github.com/mrsinham/rxforge/internal/prescription"
	"github.com/mrsinham/rxforge/internal/session"
	"github.com/mrsinham/rxforge/internal/store"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		runWizard(fromConfig, "", "rxforge-records.yaml", "local", false, false)
		os.Exit(0)
	}

	configFile := flag.String("config", "", "Load a prescription draft from a YAML file and generate without the TUI")
	output := flag.String("output", "", "Output PDF path (default: prescription.pdf or the config's setting)")
	storePath := flag.String("store", "rxforge-records.yaml", "Path of the records file")
	owner := flag.String("owner", "local", "Owner id the records are stored under")
	watermark := flag.Bool("watermark", false, "Stamp a PREVIEW watermark on every page")
	inlineMeds := flag.Bool("inline-medications", false, "Print medications as a numbered list instead of a table")
	importCSV := flag.String("import-csv", "", "Import a medicine catalog CSV and exit")
	list := flag.Bool("list", false, "List the owner's saved prescriptions and exit")
	show := flag.String("show", "", "Print one saved prescription by record id and exit")

	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("rxforge %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *importCSV != "" {
		runImport(*importCSV, *storePath, *owner)
		os.Exit(0)
	}

	if *list {
		runList(*storePath, *owner)
		os.Exit(0)
	}

	if *show != "" {
		runShow(*show, *storePath, *owner)
		os.Exit(0)
	}

	if *configFile != "" && !*interactive {
		runHeadless(*configFile, *output, *storePath, *owner, *watermark, *inlineMeds)
		os.Exit(0)
	}

	// No generation flags given: the wizard is the default entry point.
	runWizard(*configFile, *output, *storePath, *owner, *watermark, *inlineMeds)
}

// openStore loads the records file and resolves the session owner.
func openStore(storePath, owner string) (*store.Store, session.Session, error) {
	provider := session.Static{Session: session.Session{OwnerID: owner}}
	sess, err := provider.Current()
	if err != nil {
		return nil, session.Session{}, err
	}
	st, err := store.LoadFromYAML(storePath)
	if err != nil {
		return nil, session.Session{}, err
	}
	return st, sess, nil
}

// runWizard launches the interactive TUI and saves the records afterwards.
func runWizard(fromConfig, output, storePath, owner string, watermark, inlineMeds bool) {
	st, sess, err := openStore(storePath, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	meds, err := st.ListMedicinesByOwner(sess.OwnerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	suggestions := make([]string, len(meds))
	for i, m := range meds {
		suggestions[i] = m.Name
	}

	opts := wizard.Options{
		State: &wizard.State{
			OutputPath:        output,
			Watermark:         watermark,
			InlineMedications: inlineMeds,
		},
		Store:       st,
		OwnerID:     sess.OwnerID,
		Suggestions: suggestions,
	}

	if err := wizard.Run(fromConfig, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := st.SaveToYAML(storePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		os.Exit(1)
	}
}

// runImport loads a medicine CSV into the owner's catalog.
func runImport(csvPath, storePath, owner string) {
	st, sess, err := openStore(storePath, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	meds, result, err := catalog.ImportCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := st.PutMedicines(sess.OwnerID, meds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := st.SaveToYAML(storePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("rxforge")
	fmt.Println("=======")
	fmt.Printf("Imported %d medicines (%d rows skipped) into %s\n", result.Imported, result.Skipped, storePath)
}

// runList prints the owner's saved prescriptions, newest first.
func runList(storePath, owner string) {
	st, sess, err := openStore(storePath, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recs, err := st.ListPrescriptionsByOwner(sess.OwnerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("rxforge")
	fmt.Println("=======")
	if len(recs) == 0 {
		fmt.Printf("No prescriptions recorded in %s\n", storePath)
		return
	}
	fmt.Printf("%d prescription(s) in %s:\n\n", len(recs), storePath)
	for _, rec := range recs {
		fmt.Printf("  %s  %s  visit %s  (%s)\n",
			rec.ID,
			rec.Draft.Patient.Name,
			prescription.FormatDate(rec.Draft.VisitDate),
			humanize.Time(rec.CreatedAt))
	}
}

// runShow prints the details of one saved prescription.
func runShow(id, storePath, owner string) {
	st, sess, err := openStore(storePath, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec, err := st.GetPrescription(sess.OwnerID, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("rxforge")
	fmt.Println("=======")
	fmt.Printf("Record:    %s (created %s)\n", rec.ID, humanize.Time(rec.CreatedAt))
	fmt.Printf("Patient:   %s, %d years / %s\n", rec.Draft.Patient.Name, rec.Draft.Patient.Age, rec.Draft.Patient.Gender)
	fmt.Printf("Doctor:    %s, %s\n", rec.Draft.Doctor.Name, rec.Draft.Doctor.Clinic.Name)
	fmt.Printf("Visit:     %s\n", prescription.FormatDate(rec.Draft.VisitDate))
	fmt.Printf("Medications:\n")
	for i, m := range rec.Draft.Medications {
		fmt.Printf("  %d. %s %s, %s for %s\n", i+1, m.Name, m.Dosage, m.Frequency, m.Duration)
	}
}

// runHeadless generates a prescription PDF straight from a config file.
func runHeadless(configFile, output, storePath, owner string, watermark, inlineMeds bool) {
	state, err := wizard.LoadFromYAML(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if output != "" {
		state.OutputPath = output
	}
	if state.OutputPath == "" {
		state.OutputPath = "prescription.pdf"
	}
	state.Watermark = state.Watermark || watermark
	state.InlineMedications = state.InlineMedications || inlineMeds

	if state.HeaderImagePath != "" {
		if data, err := os.ReadFile(state.HeaderImagePath); err == nil {
			state.Input.HeaderImage = data
		}
	}

	draft, err := prescription.Normalize(state.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: the config is incomplete:\n")
		if errs, ok := err.(prescription.FieldErrors); ok {
			for _, line := range splitErrorLines(errs) {
				fmt.Fprintf(os.Stderr, "  - %s\n", line)
			}
		} else {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	st, sess, err := openStore(storePath, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	layoutOpts := layout.DefaultOptions()
	layoutOpts.Watermark = state.Watermark
	layoutOpts.InlineMedications = state.InlineMedications
	if len(draft.Doctor.Clinic.HeaderImage) == 0 {
		layoutOpts.HeaderStyle = layout.HeaderStyleText
	}

	fmt.Println("rxforge")
	fmt.Println("=======")
	fmt.Printf("Loading draft from %s\n\n", configFile)

	doc := layout.NewEngine(layoutOpts).Render(draft)
	pdf, err := pdfenc.Encode(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering document: %v\n", err)
		os.Exit(1)
	}

	patient, err := st.CreatePatient(sess.OwnerID, draft.Patient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rec, err := st.CreatePrescription(sess.OwnerID, patient.ID, draft)
	if err != nil {
		if delErr := st.DeletePatient(sess.OwnerID, patient.ID); delErr != nil {
			fmt.Fprintf(os.Stderr, "Error unwinding patient record: %v\n", delErr)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	clinic := draft.Doctor.Clinic
	clinic.HeaderImage = nil
	_ = st.PutDoctor(store.Doctor{
		OwnerID:        sess.OwnerID,
		Name:           draft.Doctor.Name,
		Specialization: draft.Doctor.Specialization,
		LicenseNumber:  draft.Doctor.LicenseNumber,
		Clinic:         clinic,
	})

	if err := os.WriteFile(state.OutputPath, pdf, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", state.OutputPath, err)
		os.Exit(1)
	}
	if err := st.SaveToYAML(storePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Prescription finalized!")
	fmt.Printf("  Output: %s (%s, %d pages)\n", state.OutputPath, humanize.Bytes(uint64(len(pdf))), len(doc.Pages))
	fmt.Printf("  Record: %s\n", rec.ID)
}

func splitErrorLines(errs prescription.FieldErrors) []string {
	paths := make([]string, 0, len(errs))
	for p := range errs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p + ": " + errs[p]
	}
	return lines
}

func printHelp() {
	fmt.Println("rxforge")
	fmt.Println("=======")
	fmt.Println()
	fmt.Println("Compose, validate and print clinical prescriptions.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rxforge [options]")
	fmt.Println("  rxforge wizard [--from <config.yaml>]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --interactive, -i     Launch the interactive wizard (default when no flags are given)")
	fmt.Println("  --config <FILE>       Load a draft from a YAML file and generate without the TUI")
	fmt.Println("  --output <FILE>       Output PDF path (default: prescription.pdf)")
	fmt.Println("  --store <FILE>        Records file (default: rxforge-records.yaml)")
	fmt.Println("  --owner <ID>          Owner id the records are stored under (default: local)")
	fmt.Println("  --watermark           Stamp a PREVIEW watermark on every page")
	fmt.Println("  --inline-medications  Print medications as a numbered list instead of a table")
	fmt.Println("  --import-csv <FILE>   Import a medicine catalog CSV and exit")
	fmt.Println("  --list                List the owner's saved prescriptions and exit")
	fmt.Println("  --show <ID>           Print one saved prescription by record id and exit")
	fmt.Println()
	fmt.Println("  --help                Show this help message")
	fmt.Println("  --version             Show version")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Launch the wizard")
	fmt.Println("  rxforge")
	fmt.Println()
	fmt.Println("  # Launch the wizard prefilled from a saved draft")
	fmt.Println("  rxforge wizard --from draft.yaml")
	fmt.Println()
	fmt.Println("  # Generate a PDF straight from a complete draft")
	fmt.Println("  rxforge --config draft.yaml --output visit-2025-03-03.pdf")
	fmt.Println()
	fmt.Println("  # Import the medicine catalog used for autocompletion")
	fmt.Println("  rxforge --import-csv medicines.csv")
	fmt.Println()
	fmt.Println("  # Review what has been prescribed so far")
	fmt.Println("  rxforge --list")
	fmt.Println()
	fmt.Println("CSV format:")
	fmt.Println("  Header row with at least a 'name' column; 'manufacturer_name',")
	fmt.Println("  'short_composition1', 'short_composition2' and 'category' are")
	fmt.Println("  mapped when present. Rows without a name are skipped.")
	fmt.Println()
	fmt.Println("Reproducibility:")
	fmt.Println("  Rendering is deterministic: the same draft always produces")
	fmt.Println("  byte-identical PDF output.")
}
