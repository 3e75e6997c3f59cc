package scraper

// ColumnRole names what a standings-table column holds. Roles drive the
// row parser, so source variants with different column sets are handled
// by swapping the schema, not the code.
type ColumnRole string

const (
	ColTeam             ColumnRole = "team"
	ColWins             ColumnRole = "wins"
	ColLosses           ColumnRole = "losses"
	ColTies             ColumnRole = "ties"
	ColWinPct           ColumnRole = "win_pct" // derived later, parsed only to skip
	ColPointsFor        ColumnRole = "points_for"
	ColPointsAgainst    ColumnRole = "points_against"
	ColNetPoints        ColumnRole = "net_points" // derived later, parsed only to skip
	ColHomeRecord       ColumnRole = "home_record"
	ColRoadRecord       ColumnRole = "road_record"
	ColDivisionRecord   ColumnRole = "division_record"
	ColConferenceRecord ColumnRole = "conference_record"
	ColStreak           ColumnRole = "streak"
	ColLastFive         ColumnRole = "last_five"
	ColSkip             ColumnRole = "skip"
)

// Schema is the ordered list of column roles for one standings-table
// layout. Rows with fewer cells than the schema are treated as section
// headers, not team rows.
type Schema []ColumnRole

// DefaultSchema matches the common expanded standings layout:
// Tm, W, L, T, PCT, PF, PA, Net, Home, Road, Div, Conf, Strk, Last5.
func DefaultSchema() Schema {
	return Schema{
		ColTeam, ColWins, ColLosses, ColTies, ColWinPct,
		ColPointsFor, ColPointsAgainst, ColNetPoints,
		ColHomeRecord, ColRoadRecord, ColDivisionRecord, ColConferenceRecord,
		ColStreak, ColLastFive,
	}
}

// CompactSchema matches the minimal historical layout: Tm, W, L, T, PF, PA.
func CompactSchema() Schema {
	return Schema{ColTeam, ColWins, ColLosses, ColTies, ColPointsFor, ColPointsAgainst}
}

// indexOf returns the position of the first column with the given role,
// or -1 when the schema doesn't carry it.
func (s Schema) indexOf(role ColumnRole) int {
	for i, r := range s {
		if r == role {
			return i
		}
	}
	return -1
}
