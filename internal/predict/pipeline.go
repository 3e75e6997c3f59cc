package predict

import (
	"fmt"
	"math"
	"sort"

	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/logger"
	"github.com/nmoreland/gridiron/internal/regression"
	"github.com/nmoreland/gridiron/internal/stats"
)

// defaultTestFraction is the share of rows held out for test diagnostics.
const defaultTestFraction = 0.25

// InputError reports a record that cannot be used for training, carrying
// the (year, team) identity so the caller can locate the offending row.
type InputError struct {
	Year   int
	Team   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid training record %d/%s: %s", e.Year, e.Team, e.Reason)
}

// Diagnostics describes a fitted model's quality on the historical data.
type Diagnostics struct {
	FeatureNames []string           `json:"feature_names"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`

	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
	TrainMSE  float64 `json:"train_mse"`
	TrainR2   float64 `json:"train_r2"`

	// Test metrics are only meaningful when HasTest is true; small
	// datasets are fitted on every row.
	HasTest bool    `json:"has_test"`
	TestMSE float64 `json:"test_mse,omitempty"`
	TestR2  float64 `json:"test_r2,omitempty"`

	// Degenerate flags a fit whose test R² is negative: worse than
	// predicting the mean, usually overfitting on a tiny dataset.
	Degenerate bool `json:"degenerate"`
}

// Pipeline wires the feature, statistics, and regression engines together:
// fit on historical rows, diagnose, then rank projected rows.
type Pipeline struct {
	ProfileWeights features.ProfileWeights
	RankWeights    RankWeights
	TestFraction   float64

	log *logger.Logger
}

// NewPipeline creates a pipeline with the given weight policies. A nil
// logger falls back to the package default.
func NewPipeline(pw features.ProfileWeights, rw RankWeights, log *logger.Logger) *Pipeline {
	return &Pipeline{
		ProfileWeights: pw,
		RankWeights:    rw,
		TestFraction:   defaultTestFraction,
		log:            log,
	}
}

// warn logs through the pipeline's logger or the package default.
func (p *Pipeline) warn(msg string, fields logger.Fields) {
	if p.log != nil {
		p.log.Warn(msg, fields)
		return
	}
	logger.Warn(msg, fields)
}

// ValidateTraining checks the historical rows: every record must have
// played at least one game, and each year must have exactly one champion.
func ValidateTraining(rows []features.Row) error {
	champions := make(map[int]int)
	for _, row := range rows {
		r := row.Record
		if r.TotalGames() == 0 {
			return &InputError{Year: r.Year, Team: r.Team, Reason: "zero total games"}
		}
		if r.WonSuperBowl {
			champions[r.Year]++
		}
	}
	for _, row := range rows {
		r := row.Record
		switch n := champions[r.Year]; {
		case n == 0:
			return &InputError{Year: r.Year, Team: r.Team, Reason: fmt.Sprintf("year %d has no champion", r.Year)}
		case n > 1:
			return &InputError{Year: r.Year, Team: r.Team, Reason: fmt.Sprintf("year %d has %d champions", r.Year, n)}
		}
	}
	return nil
}

// splitRows orders rows by (year, team) and holds out the trailing
// fraction as a test set. The split is fully deterministic: the same rows
// always produce the same train/test partition, with the most recent
// seasons serving as the holdout.
func splitRows(rows []features.Row, fraction float64) (train, test []features.Row) {
	sorted := make([]features.Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Record.Year != sorted[j].Record.Year {
			return sorted[i].Record.Year < sorted[j].Record.Year
		}
		return sorted[i].Record.Team < sorted[j].Record.Team
	})

	nTest := int(math.Ceil(float64(len(sorted)) * fraction))
	nTrain := len(sorted) - nTest
	minTrain := len(features.ModelNames()) + 2
	if nTrain < minTrain || nTest < 2 {
		return sorted, nil
	}
	return sorted[:nTrain], sorted[nTrain:]
}

func designMatrix(rows []features.Row) ([][]float64, []float64) {
	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		X[i] = row.Features.ModelVector()
		if row.Record.WonSuperBowl {
			y[i] = 1
		}
	}
	return X, y
}

// Fit trains a model on the historical rows and reports diagnostics.
// A negative test R² is flagged and logged, never silently accepted.
func (p *Pipeline) Fit(rows []features.Row) (*regression.Model, *Diagnostics, error) {
	if err := ValidateTraining(rows); err != nil {
		return nil, nil, err
	}

	train, test := splitRows(rows, p.TestFraction)
	trainX, trainY := designMatrix(train)

	model := regression.New(features.ModelNames())
	if err := model.Fit(trainX, trainY); err != nil {
		return nil, nil, err
	}

	trainPred, err := model.Predict(trainX)
	if err != nil {
		return nil, nil, err
	}
	trainMSE, err := regression.MeanSquaredError(trainY, trainPred)
	if err != nil {
		return nil, nil, err
	}
	trainR2, err := regression.RSquared(trainY, trainPred)
	if err != nil {
		return nil, nil, err
	}

	intercept, _, err := model.Coefficients()
	if err != nil {
		return nil, nil, err
	}
	named, err := model.NamedCoefficients()
	if err != nil {
		return nil, nil, err
	}

	diag := &Diagnostics{
		FeatureNames: model.FeatureNames(),
		Intercept:    intercept,
		Coefficients: named,
		TrainRows:    len(train),
		TestRows:     len(test),
		TrainMSE:     trainMSE,
		TrainR2:      trainR2,
	}

	if len(test) > 0 {
		testX, testY := designMatrix(test)
		testPred, err := model.Predict(testX)
		if err != nil {
			return nil, nil, err
		}
		if diag.TestMSE, err = regression.MeanSquaredError(testY, testPred); err != nil {
			return nil, nil, err
		}
		if diag.TestR2, err = regression.RSquared(testY, testPred); err != nil {
			return nil, nil, err
		}
		diag.HasTest = true

		if diag.TestR2 < 0 {
			diag.Degenerate = true
			p.warn("test R² below zero: model predicts worse than the mean", logger.Fields{
				"test_r2":  diag.TestR2,
				"features": diag.FeatureNames,
				"rows":     len(rows),
			})
		}
	}

	return model, diag, nil
}

// Project fits on the historical rows and ranks the projected rows.
func (p *Pipeline) Project(historical, projected []features.Row) ([]Ranking, *Diagnostics, error) {
	model, diag, err := p.Fit(historical)
	if err != nil {
		return nil, nil, err
	}
	rankings, err := Rank(model, projected, p.RankWeights)
	if err != nil {
		return nil, diag, err
	}
	return rankings, diag, nil
}

// OutcomeCorrelations computes the correlation of each derived feature
// with the championship outcome across the historical rows, ordered by
// feature name for stable output.
func OutcomeCorrelations(rows []features.Row) ([]stats.Column, map[string]float64, error) {
	if err := ValidateTraining(rows); err != nil {
		return nil, nil, err
	}

	cols := FeatureColumns(rows)
	_, outcome := designMatrix(rows)

	out := make(map[string]float64, len(cols))
	for _, c := range cols {
		r, err := stats.Correlation(c.Values, outcome)
		if err != nil {
			return nil, nil, fmt.Errorf("correlating %q with outcome: %w", c.Name, err)
		}
		out[c.Name] = r
	}
	return cols, out, nil
}

// FeatureColumns transposes rows into named columns in features.Names()
// order, ready for the statistics engine.
func FeatureColumns(rows []features.Row) []stats.Column {
	names := features.Names()
	cols := make([]stats.Column, len(names))
	for i, name := range names {
		cols[i] = stats.Column{Name: name, Values: make([]float64, len(rows))}
	}
	for j, row := range rows {
		vec := row.Features.Vector()
		for i := range cols {
			cols[i].Values[j] = vec[i]
		}
	}
	return cols
}
