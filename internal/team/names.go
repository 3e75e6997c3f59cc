package team

import "strings"

// franchiseAliases folds historical franchise names (relocations, renames)
// onto the current name so that multi-decade datasets track one franchise
// per row. Keys are lowercase.
var franchiseAliases = map[string]string{
	// Relocations
	"oakland raiders":      "Las Vegas Raiders",
	"los angeles raiders":  "Las Vegas Raiders",
	"san diego chargers":   "Los Angeles Chargers",
	"st. louis rams":       "Los Angeles Rams",
	"st louis rams":        "Los Angeles Rams",
	"houston oilers":       "Tennessee Titans",
	"tennessee oilers":     "Tennessee Titans",
	"st. louis cardinals":  "Arizona Cardinals",
	"st louis cardinals":   "Arizona Cardinals",
	"phoenix cardinals":    "Arizona Cardinals",
	"baltimore colts":      "Indianapolis Colts",
	"boston patriots":      "New England Patriots",

	// Renames
	"washington redskins":     "Washington Commanders",
	"washington football team": "Washington Commanders",
}

// CanonicalName maps a scraped franchise name to its canonical current name.
// Names already canonical (or unknown) pass through trimmed but otherwise
// untouched. The 1996 Cleveland-to-Baltimore move is deliberately NOT an
// alias: the Browns and Ravens are distinct franchises in league records.
func CanonicalName(name string) string {
	trimmed := strings.TrimSpace(name)
	// Standings pages decorate clinched teams with markers like "*" or "+".
	trimmed = strings.TrimRight(trimmed, "*+ ")
	if canonical, ok := franchiseAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
