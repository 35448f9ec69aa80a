// Package catalog imports the medicine reference dataset from CSV and
// serves autocomplete suggestions while prescribing.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mrsinham/rxforge/internal/store"
)

// ImportFormatError reports a CSV file the importer cannot use at all,
// as opposed to individual bad rows which are skipped.
type ImportFormatError struct {
	Reason string
}

func (e *ImportFormatError) Error() string {
	return "import: " + e.Reason
}

// Columns recognized in the header row, matched case-insensitively.
// Anything else is carried along but ignored.
var headerFields = map[string]int{
	"name":               0,
	"manufacturer_name":  1,
	"short_composition1": 2,
	"short_composition2": 3,
	"category":           4,
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportCSV reads a medicine dataset, skipping rows without a name or with
// the wrong field count. A file yielding zero usable rows is rejected with
// ImportFormatError so a wrong file never silently empties the catalog.
func ImportCSV(r io.Reader) ([]store.Medicine, ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ImportResult{}, &ImportFormatError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, ImportResult{}, &ImportFormatError{Reason: fmt.Sprintf("reading header: %v", err)}
	}

	// column[i] = destination field for CSV column i, or -1.
	column := make([]int, len(header))
	nameCol := -1
	for i, h := range header {
		column[i] = -1
		if dst, ok := headerFields[strings.ToLower(strings.TrimSpace(h))]; ok {
			column[i] = dst
			if dst == 0 {
				nameCol = i
			}
		}
	}
	if nameCol == -1 {
		return nil, ImportResult{}, &ImportFormatError{Reason: "header has no name column"}
	}

	var (
		meds   []store.Medicine
		result ImportResult
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row (bad quoting and the like): skip it.
			result.Skipped++
			continue
		}
		if len(row) != len(header) || strings.TrimSpace(row[nameCol]) == "" {
			result.Skipped++
			continue
		}
		var fields [5]string
		for i, v := range row {
			if column[i] >= 0 {
				fields[column[i]] = strings.TrimSpace(v)
			}
		}
		meds = append(meds, store.Medicine{
			Name:         fields[0],
			Manufacturer: fields[1],
			Composition1: fields[2],
			Composition2: fields[3],
			Category:     fields[4],
		})
		result.Imported++
	}

	if len(meds) == 0 {
		return nil, result, &ImportFormatError{Reason: "no usable rows"}
	}
	return meds, result, nil
}

// Suggest returns up to limit catalog entries whose name contains the query,
// case-insensitively. An empty query yields nothing.
func Suggest(meds []store.Medicine, query string, limit int) []store.Medicine {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}
	var out []store.Medicine
	for _, m := range meds {
		if strings.Contains(strings.ToLower(m.Name), query) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
