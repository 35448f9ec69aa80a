package screens

import (
	"sort"
	"strings"

	"github.com/mrsinham/rxforge/cmd/rxforge/wizard/components"
	"github.com/mrsinham/rxforge/internal/prescription"
)

// renderFieldErrors formats the field errors from a failed step validation
// as a block shown above the form, one line per field.
func renderFieldErrors(errs prescription.FieldErrors) string {
	if len(errs) == 0 {
		return ""
	}

	paths := make([]string, 0, len(errs))
	for p := range errs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for i, p := range paths {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("✗ ")
		sb.WriteString(errs[p])
	}
	return components.ErrorTextStyle.Render(sb.String())
}
