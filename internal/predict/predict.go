// Package predict ranks projected team seasons by their likelihood of
// winning the Super Bowl, blending a fitted regression model with the
// championship-profile heuristic.
package predict

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/regression"
)

// RankWeights controls the final composite score. Regression and Profile
// apply to min-max normalized signals; WinPct applies to the raw deviation
// from a .500 record and is deliberately un-normalized, acting as a direct
// distance-from-breakeven signal.
type RankWeights struct {
	Regression float64 `toml:"regression"`
	Profile    float64 `toml:"profile"`
	WinPct     float64 `toml:"win_pct"`
}

// DefaultRankWeights returns the standard 0.4/0.4/0.2 blend.
func DefaultRankWeights() RankWeights {
	return RankWeights{Regression: 0.40, Profile: 0.40, WinPct: 0.20}
}

// Ranking is one candidate's position in the final ordering, with the
// signals that produced it.
type Ranking struct {
	Team       string  `json:"team"`
	Year       int     `json:"year"`
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence_pct"`

	RegressionScore     float64 `json:"regression_score"`
	ChampionshipProfile float64 `json:"championship_profile"`
	WinPct              float64 `json:"win_pct"`
}

// Rank scores every candidate row with the fitted model and the
// championship-profile heuristic, normalizes both signals across the
// candidate set, and returns the candidates ordered best-first with ranks
// 1..k and a confidence percentage.
//
// Ties on the composite score break deterministically by team name, so the
// ordering is a total order regardless of input order.
func Rank(model *regression.Model, candidates []features.Row, w RankWeights) ([]Ranking, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no candidates to rank")
	}
	if !model.Fitted() {
		return nil, regression.ErrNotFitted
	}

	X := make([][]float64, len(candidates))
	for i, c := range candidates {
		X[i] = c.Features.ModelVector()
	}
	regScores, err := model.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("scoring candidates: %w", err)
	}

	profiles := make([]float64, len(candidates))
	for i, c := range candidates {
		profiles[i] = c.Features.ChampionshipProfile
	}

	normReg := minMaxNormalize(regScores)
	normProfile := minMaxNormalize(profiles)

	rankings := make([]Ranking, len(candidates))
	for i, c := range candidates {
		winPct := c.Features.WinPct
		rankings[i] = Ranking{
			Team:                c.Record.Team,
			Year:                c.Record.Year,
			Score:               w.Regression*normReg[i] + w.Profile*normProfile[i] + w.WinPct*(winPct-0.5),
			RegressionScore:     regScores[i],
			ChampionshipProfile: c.Features.ChampionshipProfile,
			WinPct:              winPct,
		}
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Score != rankings[j].Score {
			return rankings[i].Score > rankings[j].Score
		}
		return rankings[i].Team < rankings[j].Team
	})

	var scoreSum float64
	for _, r := range rankings {
		scoreSum += r.Score
	}
	for i := range rankings {
		rankings[i].Rank = i + 1
		rankings[i].Confidence = confidence(rankings[i].Score, scoreSum)
	}
	return rankings, nil
}

// minMaxNormalize rescales values to [0,1]. When every value is equal the
// result is all zeros, never a division by zero.
func minMaxNormalize(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(values))
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// confidence expresses a score as a share of the total, in percent.
// Negative-dominated score sets floor at 0 rather than reporting a
// negative or unbounded share.
func confidence(score, sum float64) float64 {
	if sum <= 0 {
		return 0
	}
	pct := score / sum * 100
	if pct < 0 {
		return 0
	}
	return pct
}
