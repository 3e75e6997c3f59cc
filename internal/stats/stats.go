// Package stats implements the manual Pearson correlation machinery used
// for feature diagnostics: pairwise correlation, a named correlation
// matrix, and an independent second formulation for cross-checking.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when paired sequences differ in length.
var ErrLengthMismatch = errors.New("sequences have different lengths")

// ErrTooFewValues is returned for sequences shorter than two values.
var ErrTooFewValues = errors.New("need at least two values")

// Column is a named numeric sequence, one value per record.
type Column struct {
	Name   string
	Values []float64
}

// Correlation computes the Pearson correlation coefficient between x and y
// using the centered-sum formula. A zero-variance input (constant sequence)
// yields 0 by policy rather than NaN. Mismatched lengths and sequences
// shorter than two values are caller errors.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewValues, len(x))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return 0, fmt.Errorf("NaN value at index %d", i)
		}
	}

	meanX := mean(x)
	meanY := mean(y)

	var num, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		// Constant input: correlation is undefined, defined here as 0.
		return 0, nil
	}
	return num / denom, nil
}

// CorrelationProductSum computes the same coefficient through the raw
// product-sum identity (Σxy − n·x̄·ȳ). It exists as an independent
// implementation for validating Correlation; tests assert the two agree
// within floating-point tolerance.
func CorrelationProductSum(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewValues, len(x))
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
	}

	num := sumXY - sumX*sumY/n
	denom := math.Sqrt((sumXX - sumX*sumX/n) * (sumYY - sumY*sumY/n))
	if denom == 0 || math.IsNaN(denom) {
		return 0, nil
	}
	return num / denom, nil
}

// Matrix is a symmetric correlation matrix over named columns.
type Matrix struct {
	Names []string    `json:"names"`
	Cells [][]float64 `json:"cells"`
}

// At returns the correlation between the named columns.
func (m *Matrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, n := range m.Names {
		if n == a {
			ia = i
		}
		if n == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Cells[ia][ib], true
}

// CorrelationMatrix computes the k×k Pearson matrix over the given columns.
// The diagonal is set to exactly 1.0 rather than computed, so floating-point
// drift never leaks into self-correlations, and the upper triangle is
// mirrored onto the lower one.
func CorrelationMatrix(columns []Column) (*Matrix, error) {
	if len(columns) == 0 {
		return nil, errors.New("no columns given")
	}
	n := len(columns[0].Values)
	for _, c := range columns {
		if len(c.Values) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d",
				ErrLengthMismatch, c.Name, len(c.Values), n)
		}
	}

	m := &Matrix{
		Names: make([]string, len(columns)),
		Cells: make([][]float64, len(columns)),
	}
	for i, c := range columns {
		m.Names[i] = c.Name
		m.Cells[i] = make([]float64, len(columns))
		m.Cells[i][i] = 1.0
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			r, err := Correlation(columns[i].Values, columns[j].Values)
			if err != nil {
				return nil, fmt.Errorf("correlating %q with %q: %w",
					columns[i].Name, columns[j].Name, err)
			}
			m.Cells[i][j] = r
			m.Cells[j][i] = r
		}
	}
	return m, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
