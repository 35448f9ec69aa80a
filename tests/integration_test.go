package tests

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/rxforge/cmd/rxforge/wizard"
	"github.com/mrsinham/rxforge/internal/catalog"
	"github.com/mrsinham/rxforge/internal/layout"
	"github.com/mrsinham/rxforge/internal/layout/pdfenc"
	"github.com/mrsinham/rxforge/internal/prescription"
	"github.com/mrsinham/rxforge/internal/store"
)

// sampleInput returns a complete, valid prescription input.
func sampleInput() prescription.Input {
	return prescription.Input{
		Name:      "Ravi Kumar",
		Age:       "45",
		Gender:    "male",
		Contact:   "9876501234",
		Address:   "7 Lake View, Pune",
		VisitDate: "2025-03-03",
		Symptoms:  "Fever\nHeadache\nBody ache",
		Diagnosis: "Viral fever",
		Medications: []prescription.MedicationInput{
			{
				Name:      "Paracetamol 500mg",
				Dosage:    "1 tablet",
				Frequency: "1-0-1",
				Route:     "Oral",
				Duration:  "5 days",
			},
			{
				Name:         "Cetirizine 10mg",
				Dosage:       "1 tablet",
				Frequency:    "0-0-1",
				Route:        "Oral",
				Duration:     "3 days",
				Instructions: "After food",
			},
		},
		Advice:       "Drink plenty of fluids\nRest for three days",
		LabTests:     "CBC",
		FollowUpDate: "2025-03-10",
		Clinic: prescription.ClinicInput{
			Name:    "Sharma Clinic",
			Address: "12 MG Road, Pune",
			Phone:   "+91 98765 43210",
			Email:   "contact@sharmaclinic.in",
		},
		Doctor: prescription.DoctorInput{
			Name:           "Dr. A. Sharma",
			Specialization: "General Medicine",
			LicenseNumber:  "MH-12345",
		},
	}
}

func renderPDF(t *testing.T, draft prescription.Draft, opts layout.Options) ([]byte, *layout.Document) {
	t.Helper()

	doc := layout.NewEngine(opts).Render(draft)
	pdf, err := pdfenc.Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return pdf, doc
}

// TestPipeline_EndToEnd tests the full path from raw input to a PDF on disk.
func TestPipeline_EndToEnd(t *testing.T) {
	draft, err := prescription.Normalize(sampleInput())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	opts := layout.DefaultOptions()
	opts.HeaderStyle = layout.HeaderStyleText
	pdf, doc := renderPDF(t, draft, opts)

	if len(doc.Pages) < 1 {
		t.Fatal("Expected at least one page")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-1.4")) {
		t.Error("PDF header missing")
	}
	if !bytes.Contains(pdf, []byte("%%EOF")) {
		t.Error("PDF trailer missing")
	}

	outPath := filepath.Join(t.TempDir(), "rx.pdf")
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(written, pdf) {
		t.Error("Bytes on disk differ from encoded bytes")
	}

	t.Logf("✓ Generated %d-page document (%d bytes)", len(doc.Pages), len(pdf))
}

// TestPipeline_Reproducible tests that rendering the same draft twice, with
// separate engine instances, produces byte-identical PDFs.
func TestPipeline_Reproducible(t *testing.T) {
	draft, err := prescription.Normalize(sampleInput())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	for _, opts := range []layout.Options{
		layout.DefaultOptions(),
		{PageWidth: 210, PageHeight: 297, Margin: 15, HeaderStyle: layout.HeaderStyleText, Watermark: true},
		{PageWidth: 210, PageHeight: 297, Margin: 15, HeaderStyle: layout.HeaderStyleText, InlineMedications: true},
	} {
		first, _ := renderPDF(t, draft, opts)
		second, _ := renderPDF(t, draft, opts)
		if !bytes.Equal(first, second) {
			t.Errorf("Options %+v: two renders of the same draft differ", opts)
		}
	}

	t.Logf("✓ Re-rendering is byte-identical")
}

// footerText returns the "Page i of N" line of a page, if present.
func footerText(p layout.Page) (string, bool) {
	for _, ins := range p.Instructions {
		if run, ok := ins.(layout.TextRun); ok && strings.HasPrefix(run.Text, "Page ") {
			return run.Text, true
		}
	}
	return "", false
}

// TestPipeline_LongPrescription tests pagination and the two-pass page
// numbering on a draft that cannot fit on one page.
func TestPipeline_LongPrescription(t *testing.T) {
	in := sampleInput()
	in.Medications = nil
	for i := 0; i < 40; i++ {
		in.Medications = append(in.Medications, prescription.MedicationInput{
			Name:      fmt.Sprintf("Medicine %d 500mg", i+1),
			Dosage:    "1 tablet",
			Frequency: "1-1-1",
			Route:     "Oral",
			Duration:  "7 days",
		})
	}

	draft, err := prescription.Normalize(in)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	opts := layout.DefaultOptions()
	opts.HeaderStyle = layout.HeaderStyleText
	_, doc := renderPDF(t, draft, opts)

	if len(doc.Pages) < 2 {
		t.Fatalf("Expected multiple pages for 40 medications, got %d", len(doc.Pages))
	}
	for i, page := range doc.Pages {
		footer, ok := footerText(page)
		if !ok {
			t.Fatalf("Page %d has no page-number footer", i+1)
		}
		want := fmt.Sprintf("Page %d of %d", i+1, len(doc.Pages))
		if footer != want {
			t.Errorf("Page %d footer = %q, want %q", i+1, footer, want)
		}
	}

	t.Logf("✓ %d pages, all numbered", len(doc.Pages))
}

// TestValidation_FieldPaths tests that cross-step validation reports errors
// under the form's field paths.
func TestValidation_FieldPaths(t *testing.T) {
	in := sampleInput()
	in.Name = ""
	in.Age = "abc"
	in.Medications[1].Dosage = ""
	in.Clinic.Phone = ""

	_, err := prescription.Normalize(in)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	errs, ok := err.(prescription.FieldErrors)
	if !ok {
		t.Fatalf("Expected FieldErrors, got %T", err)
	}

	for _, path := range []string{"name", "age", "medications.1.dosage", "clinicInfo.phone"} {
		if _, found := errs[path]; !found {
			t.Errorf("Expected an error under path %q, got: %v", path, errs)
		}
	}
}

// TestFinalize_PersistsAndReloads tests the wizard flow end to end: step
// walk, finalization, and reloading the saved records file.
func TestFinalize_PersistsAndReloads(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "records.yaml")

	seq := 0
	newID := func() (string, error) {
		seq++
		return fmt.Sprintf("id-%04d", seq), nil
	}
	st, err := store.New(store.WithIDSource(newID))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}

	flow := wizard.NewFlow(sampleInput())
	for flow.Step() != wizard.StepPreview {
		if !flow.Advance() {
			t.Fatalf("Advance blocked at %s: %v", flow.Step(), flow.Errors())
		}
	}

	opts := layout.DefaultOptions()
	opts.HeaderStyle = layout.HeaderStyleText
	res, err := flow.Finalize(wizard.FinalizeDeps{
		Store:   st,
		OwnerID: "local",
		Render: func(d prescription.Draft) ([]byte, error) {
			return pdfenc.Encode(layout.NewEngine(opts).Render(d))
		},
	})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if len(res.Document) == 0 {
		t.Fatal("Finalize returned an empty document")
	}

	if err := st.SaveToYAML(storePath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}
	reloaded, err := store.LoadFromYAML(storePath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	rec, err := reloaded.GetPrescription("local", res.Prescription.ID)
	if err != nil {
		t.Fatalf("GetPrescription after reload failed: %v", err)
	}
	if rec.Draft.Patient.Name != "Ravi Kumar" {
		t.Errorf("Reloaded patient name = %q", rec.Draft.Patient.Name)
	}
	if rec.PatientID != res.Patient.ID {
		t.Errorf("Reloaded prescription references patient %q, want %q", rec.PatientID, res.Patient.ID)
	}

	t.Logf("✓ Prescription %s survived a save/load cycle", rec.ID)
}

// TestImport_CatalogFeedsSuggestions tests that an imported CSV catalog is
// persisted and queryable the way the wizard uses it.
func TestImport_CatalogFeedsSuggestions(t *testing.T) {
	csv := strings.Join([]string{
		"name,manufacturer_name,short_composition1,category",
		"Paracetamol 500mg,ABC Pharma,Paracetamol 500mg,Analgesic",
		"Pantoprazole 40mg,XYZ Labs,Pantoprazole 40mg,Antacid",
		",Ghost Pharma,Nothing,Unknown",
	}, "\n")

	meds, result, err := catalog.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("Import result = %+v, want 2 imported / 1 skipped", result)
	}

	st, err := store.New()
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	if err := st.PutMedicines("local", meds); err != nil {
		t.Fatalf("PutMedicines failed: %v", err)
	}

	storePath := filepath.Join(t.TempDir(), "records.yaml")
	if err := st.SaveToYAML(storePath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}
	reloaded, err := store.LoadFromYAML(storePath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	stored, err := reloaded.ListMedicinesByOwner("local")
	if err != nil {
		t.Fatalf("ListMedicinesByOwner failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("Expected 2 medicines after reload, got %d", len(stored))
	}

	matches := catalog.Suggest(stored, "para", 5)
	if len(matches) != 1 || matches[0].Name != "Paracetamol 500mg" {
		t.Errorf("Suggest(\"para\") = %v", matches)
	}

	t.Logf("✓ Catalog import round trip passed")
}
