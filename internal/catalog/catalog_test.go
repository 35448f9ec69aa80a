package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/mrsinham/rxforge/internal/store"
)

func TestImportCSV(t *testing.T) {
	in := strings.NewReader(
		"name,manufacturer_name,short_composition1,short_composition2,category\n" +
			"Paracetamol,ABC Pharma,Paracetamol 500mg,,Analgesic\n" +
			"Amoxicillin,XYZ Labs,Amoxicillin 250mg,Clavulanic Acid 125mg,Antibiotic\n")

	meds, result, err := ImportCSV(in)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 imported", result)
	}
	want := store.Medicine{
		Name:         "Paracetamol",
		Manufacturer: "ABC Pharma",
		Composition1: "Paracetamol 500mg",
		Category:     "Analgesic",
	}
	if meds[0] != want {
		t.Errorf("meds[0] = %+v, want %+v", meds[0], want)
	}
	if meds[1].Composition2 != "Clavulanic Acid 125mg" {
		t.Errorf("Composition2 = %q", meds[1].Composition2)
	}
}

func TestImportCSV_HeaderCaseAndOrder(t *testing.T) {
	in := strings.NewReader(
		"Category,NAME,Manufacturer_Name\n" +
			"Analgesic,Ibuprofen,Generic Co\n")

	meds, _, err := ImportCSV(in)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if meds[0].Name != "Ibuprofen" || meds[0].Category != "Analgesic" || meds[0].Manufacturer != "Generic Co" {
		t.Errorf("columns not mapped by header name: %+v", meds[0])
	}
}

func TestImportCSV_ExtraColumnsIgnored(t *testing.T) {
	in := strings.NewReader(
		"id,name,price,manufacturer_name\n" +
			"1,Cetirizine,12.50,Allergy Inc\n")

	meds, _, err := ImportCSV(in)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if meds[0].Name != "Cetirizine" || meds[0].Manufacturer != "Allergy Inc" {
		t.Errorf("meds[0] = %+v", meds[0])
	}
}

func TestImportCSV_SkipsMalformedRows(t *testing.T) {
	in := strings.NewReader(
		"name,manufacturer_name\n" +
			"Paracetamol,ABC Pharma\n" +
			",No Name Pharma\n" +
			"TooShort\n" +
			"Amoxicillin,XYZ Labs\n")

	meds, result, err := ImportCSV(in)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if result.Imported != 2 || result.Skipped != 2 {
		t.Fatalf("result = %+v, want 2 imported / 2 skipped", result)
	}
	if meds[0].Name != "Paracetamol" || meds[1].Name != "Amoxicillin" {
		t.Errorf("unexpected rows: %+v", meds)
	}
}

func TestImportCSV_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty file", ""},
		{"no name column", "manufacturer_name,category\nABC Pharma,Analgesic\n"},
		{"header only", "name,manufacturer_name\n"},
		{"all rows unusable", "name,manufacturer_name\n,ABC Pharma\n,XYZ Labs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ImportCSV(strings.NewReader(tt.in))
			if err == nil {
				t.Fatalf("ImportCSV() accepted %s", tt.name)
			}
			var ferr *ImportFormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("error = %T, want *ImportFormatError", err)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	meds := []store.Medicine{
		{Name: "Paracetamol"},
		{Name: "Paracetamol XR"},
		{Name: "Amoxicillin"},
		{Name: "Cetirizine"},
	}

	got := Suggest(meds, "para", 10)
	if len(got) != 2 {
		t.Fatalf("Suggest(para) returned %d entries, want 2", len(got))
	}

	got = Suggest(meds, "PARA", 1)
	if len(got) != 1 || got[0].Name != "Paracetamol" {
		t.Errorf("Suggest(PARA, 1) = %+v", got)
	}

	if got := Suggest(meds, "", 10); got != nil {
		t.Errorf("Suggest with empty query = %+v, want nil", got)
	}
	if got := Suggest(meds, "zz", 10); got != nil {
		t.Errorf("Suggest with no match = %+v, want nil", got)
	}
}
