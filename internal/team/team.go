package team

import (
	"fmt"
	"strconv"
	"strings"
)

// Conference identifies an NFL conference
type Conference string

const (
	AFC Conference = "AFC"
	NFC Conference = "NFC"
)

// Triple is a wins-losses-ties record for a situational split
// (home, road, division, conference, last five games).
//
// An all-zero Triple means the split was unavailable in the source;
// older seasons don't carry splits and we never fabricate them.
type Triple struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Games returns the number of games in the split.
func (t Triple) Games() int {
	return t.Wins + t.Losses + t.Ties
}

// Available reports whether the split carries any data.
func (t Triple) Available() bool {
	return t.Games() > 0
}

// WinPct returns wins over games played, 0 for an empty split.
func (t Triple) WinPct() float64 {
	g := t.Games()
	if g == 0 {
		return 0
	}
	return float64(t.Wins) / float64(g)
}

// String formats the triple in the short "W-L-T" form used by standings pages.
func (t Triple) String() string {
	return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
}

// TeamSeason is one season of one franchise: the raw counting stats scraped
// from a standings page plus the championship outcome. Raw records are
// immutable inputs to the pipeline; derived metrics live in
// features.FeatureSet and are computed from a record, never written back.
type TeamSeason struct {
	Year       int        `json:"year"`
	Team       string     `json:"team"`
	Conference Conference `json:"conference"`
	Division   string     `json:"division,omitempty"`

	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`

	// Situational splits, all optional (zero Triple = unavailable).
	Home          Triple `json:"home,omitempty"`
	Road          Triple `json:"road,omitempty"`
	DivisionRec   Triple `json:"division_record,omitempty"`
	ConferenceRec Triple `json:"conference_record,omitempty"`
	LastFive      Triple `json:"last_five,omitempty"`

	// Streak is the short-form current streak as scraped, e.g. "W3" or "L1".
	Streak string `json:"streak,omitempty"`

	// WonSuperBowl is the outcome label: true for exactly one team per
	// historical year, always false on projected rows.
	WonSuperBowl bool `json:"won_superbowl"`
}

// New creates a TeamSeason with the franchise name canonicalized.
func New(year int, name string, conf Conference) *TeamSeason {
	return &TeamSeason{
		Year:       year,
		Team:       CanonicalName(name),
		Conference: conf,
	}
}

// TotalGames returns wins + losses + ties for the full season.
func (r *TeamSeason) TotalGames() int {
	return r.Wins + r.Losses + r.Ties
}

// NetPoints returns points scored minus points allowed.
func (r *TeamSeason) NetPoints() int {
	return r.PointsFor - r.PointsAgainst
}

// Key returns the natural identity of the record, used for sorting,
// deduplication, and error reporting.
func (r *TeamSeason) Key() string {
	return fmt.Sprintf("%d/%s", r.Year, r.Team)
}

// ParseTriple parses a "W-L-T" or "W-L" record string. Whitespace around
// the numbers is tolerated. A malformed string yields the zero Triple under
// the single zero-fill cleaning policy: bad source fields become zeros at
// ingestion, never per call site.
func ParseTriple(s string) Triple {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 2 || len(parts) > 3 {
		return Triple{}
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Triple{}
		}
		nums[i] = n
	}

	t := Triple{Wins: nums[0], Losses: nums[1]}
	if len(nums) == 3 {
		t.Ties = nums[2]
	}
	return t
}

// ParseConference normalizes a conference string, accepting the common
// variants found on standings pages ("AFC", "afc", "American Football
// Conference"). Unknown values return an error so callers can report the
// offending row.
func ParseConference(s string) (Conference, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AFC", "AMERICAN FOOTBALL CONFERENCE":
		return AFC, nil
	case "NFC", "NATIONAL FOOTBALL CONFERENCE":
		return NFC, nil
	}
	return "", fmt.Errorf("unknown conference: %q", s)
}
