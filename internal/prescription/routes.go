package prescription

// Routes is the fixed administration-route vocabulary accepted for a
// medication entry.
var Routes = []string{
	"Oral",
	"Intravenous (IV)",
	"Intramuscular (IM)",
	"Subcutaneous (SC)",
	"Topical",
	"Inhalation",
	"Sublingual",
	"Rectal",
	"Ophthalmic",
	"Otic",
	"Nasal",
	"Transdermal",
}

// Frequencies lists common dosing frequencies offered as suggestions in the
// wizard. Free-text frequencies are still accepted.
var Frequencies = []string{
	"Once daily",
	"Twice daily",
	"Three times daily",
	"Four times daily",
	"Every 4 hours",
	"Every 6 hours",
	"Every 8 hours",
	"Every 12 hours",
	"As needed",
	"Before meals",
	"After meals",
	"At bedtime",
}

// IsValidRoute reports whether route is in the fixed vocabulary.
func IsValidRoute(route string) bool {
	for _, r := range Routes {
		if r == route {
			return true
		}
	}
	return false
}
