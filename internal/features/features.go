package features

import (
	"fmt"
	"math"

	"github.com/nmoreland/gridiron/internal/team"
)

// Strength-of-schedule proxy weights: an even blend of division and
// conference win percentage. Fixed by policy, covered by tests.
const (
	sosDivisionWeight   = 0.5
	sosConferenceWeight = 0.5
)

// ProfileWeights controls the championship-profile composite. The weights
// are a policy choice, not a fitted quantity; they must sum to 1 so the
// profile stays in [0,1].
type ProfileWeights struct {
	WinPct              float64 `toml:"win_pct"`
	ScoringEfficiency   float64 `toml:"scoring_efficiency"`
	HomeRoadConsistency float64 `toml:"home_road_consistency"`
	StrengthOfSchedule  float64 `toml:"strength_of_schedule"`
}

// DefaultProfileWeights returns the standard 0.4/0.3/0.15/0.15 blend.
func DefaultProfileWeights() ProfileWeights {
	return ProfileWeights{
		WinPct:              0.40,
		ScoringEfficiency:   0.30,
		HomeRoadConsistency: 0.15,
		StrengthOfSchedule:  0.15,
	}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w ProfileWeights) Validate() error {
	for _, v := range []float64{w.WinPct, w.ScoringEfficiency, w.HomeRoadConsistency, w.StrengthOfSchedule} {
		if v < 0 {
			return fmt.Errorf("profile weights must be non-negative, got %+v", w)
		}
	}
	sum := w.WinPct + w.ScoringEfficiency + w.HomeRoadConsistency + w.StrengthOfSchedule
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("profile weights must sum to 1, got %g", sum)
	}
	return nil
}

// FeatureSet holds the derived metrics for one TeamSeason.
type FeatureSet struct {
	TotalGames            int     `json:"total_games"`
	WinPct                float64 `json:"win_pct"`
	NetPoints             float64 `json:"net_points"`
	ScoringEfficiency     float64 `json:"scoring_efficiency"`
	HomeRoadConsistency   float64 `json:"home_road_consistency"`
	WinsAboveAverage      float64 `json:"wins_above_average"`
	PointDiffAboveAverage float64 `json:"point_diff_above_average"`
	StrengthOfSchedule    float64 `json:"strength_of_schedule"`
	ChampionshipProfile   float64 `json:"championship_profile"`
}

// Row pairs a raw record with its derived features. Rows are what the
// statistics, regression, and ranking stages consume.
type Row struct {
	Record   *team.TeamSeason
	Features FeatureSet
}

// Names lists the feature columns in the canonical order used by CSV
// export, correlation reports, and the design matrix.
func Names() []string {
	return []string{
		"win_pct",
		"net_points",
		"scoring_efficiency",
		"home_road_consistency",
		"wins_above_average",
		"point_diff_above_average",
		"strength_of_schedule",
		"championship_profile",
	}
}

// ModelNames lists the regression design-matrix columns. The championship
// profile is excluded: it is an exact linear combination of four other
// columns, and feeding both to the normal equation yields a singular
// system. The profile contributes at the ranking stage instead.
func ModelNames() []string {
	return []string{
		"win_pct",
		"net_points",
		"scoring_efficiency",
		"home_road_consistency",
		"wins_above_average",
		"point_diff_above_average",
		"strength_of_schedule",
	}
}

// Vector returns the feature values in Names() order.
func (f FeatureSet) Vector() []float64 {
	return []float64{
		f.WinPct,
		f.NetPoints,
		f.ScoringEfficiency,
		f.HomeRoadConsistency,
		f.WinsAboveAverage,
		f.PointDiffAboveAverage,
		f.StrengthOfSchedule,
		f.ChampionshipProfile,
	}
}

// ModelVector returns the feature values in ModelNames() order.
func (f FeatureSet) ModelVector() []float64 {
	return []float64{
		f.WinPct,
		f.NetPoints,
		f.ScoringEfficiency,
		f.HomeRoadConsistency,
		f.WinsAboveAverage,
		f.PointDiffAboveAverage,
		f.StrengthOfSchedule,
	}
}

// WinPct returns wins over total games, 0 for a record with no games.
func WinPct(r *team.TeamSeason) float64 {
	g := r.TotalGames()
	if g == 0 {
		return 0
	}
	return float64(r.Wins) / float64(g)
}

// ScoringEfficiency returns the share of all points in the team's games
// that the team scored, 0 when no points were recorded on either side.
func ScoringEfficiency(r *team.TeamSeason) float64 {
	total := r.PointsFor + r.PointsAgainst
	if total == 0 {
		return 0
	}
	return float64(r.PointsFor) / float64(total)
}

// HomeRoadConsistency measures how similar a team's home and road form is:
// 1 means identical win rates, 0 means maximally split. When either split
// is unavailable the consistency is 0 — we don't fabricate splits.
func HomeRoadConsistency(r *team.TeamSeason) float64 {
	if !r.Home.Available() || !r.Road.Available() {
		return 0
	}
	return 1 - math.Abs(r.Home.WinPct()-r.Road.WinPct())
}

// StrengthOfSchedule is a proxy built from intra-division and
// intra-conference win rates, weighted evenly. Unavailable splits
// contribute 0 to their half of the blend.
func StrengthOfSchedule(r *team.TeamSeason) float64 {
	return sosDivisionWeight*r.DivisionRec.WinPct() + sosConferenceWeight*r.ConferenceRec.WinPct()
}

// ChampionshipProfile blends win rate, scoring efficiency, home/road
// consistency, and strength of schedule into a single [0,1] heuristic.
func ChampionshipProfile(r *team.TeamSeason, w ProfileWeights) float64 {
	return w.WinPct*WinPct(r) +
		w.ScoringEfficiency*ScoringEfficiency(r) +
		w.HomeRoadConsistency*HomeRoadConsistency(r) +
		w.StrengthOfSchedule*StrengthOfSchedule(r)
}

// Derive computes a FeatureSet for every record. The above-average metrics
// compare each record against the mean of all records sharing its year, so
// the full season context travels with each row. The input slice and its
// records are left untouched.
func Derive(records []*team.TeamSeason, w ProfileWeights) ([]Row, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	type yearStats struct {
		count   int
		sumWins float64
		sumDiff float64
	}
	byYear := make(map[int]*yearStats)
	for _, r := range records {
		ys := byYear[r.Year]
		if ys == nil {
			ys = &yearStats{}
			byYear[r.Year] = ys
		}
		ys.count++
		ys.sumWins += float64(r.Wins)
		ys.sumDiff += float64(r.NetPoints())
	}

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		ys := byYear[r.Year]
		avgWins := ys.sumWins / float64(ys.count)
		avgDiff := ys.sumDiff / float64(ys.count)

		rows = append(rows, Row{
			Record: r,
			Features: FeatureSet{
				TotalGames:            r.TotalGames(),
				WinPct:                WinPct(r),
				NetPoints:             float64(r.NetPoints()),
				ScoringEfficiency:     ScoringEfficiency(r),
				HomeRoadConsistency:   HomeRoadConsistency(r),
				WinsAboveAverage:      float64(r.Wins) - avgWins,
				PointDiffAboveAverage: float64(r.NetPoints()) - avgDiff,
				StrengthOfSchedule:    StrengthOfSchedule(r),
				ChampionshipProfile:   ChampionshipProfile(r, w),
			},
		})
	}
	return rows, nil
}
