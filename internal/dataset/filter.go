package dataset

import (
	"strings"

	"github.com/nmoreland/gridiron/internal/team"
)

// Filter narrows a dataset before export or analysis. Zero values mean
// "no constraint" for each criterion.
type Filter struct {
	// Year range, inclusive on both ends; 0 disables the bound.
	FromYear int `json:"from_year,omitempty"`
	ToYear   int `json:"to_year,omitempty"`

	// Conference restriction (AFC or NFC).
	Conference team.Conference `json:"conference,omitempty"`

	// Team name filtering (case-insensitive substring match, any-of).
	Teams []string `json:"teams,omitempty"`
}

// IsEmpty reports whether the filter has no criteria.
func (f *Filter) IsEmpty() bool {
	return f.FromYear == 0 && f.ToYear == 0 && f.Conference == "" && len(f.Teams) == 0
}

// Matches checks one record against all criteria.
func (f *Filter) Matches(r *team.TeamSeason) bool {
	if f.FromYear != 0 && r.Year < f.FromYear {
		return false
	}
	if f.ToYear != 0 && r.Year > f.ToYear {
		return false
	}
	if f.Conference != "" && r.Conference != f.Conference {
		return false
	}
	if len(f.Teams) > 0 {
		name := strings.ToLower(r.Team)
		matched := false
		for _, t := range f.Teams {
			if strings.Contains(name, strings.ToLower(strings.TrimSpace(t))) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Apply returns the records passing every criterion, preserving order.
// The input slice is never modified.
func (f *Filter) Apply(records []*team.TeamSeason) []*team.TeamSeason {
	if f.IsEmpty() {
		return records
	}
	out := make([]*team.TeamSeason, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
