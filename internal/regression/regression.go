// Package regression fits ordinary least squares models via the normal
// equation. The linear system is solved with Gaussian elimination under
// partial pivoting instead of an explicit matrix inverse, and a
// near-singular design matrix is reported as an error instead of producing
// garbage coefficients.
package regression

import (
	"errors"
	"fmt"
	"math"
)

// pivotEpsilon is the smallest pivot magnitude treated as non-singular.
const pivotEpsilon = 1e-12

// ErrNotFitted is returned when predictions or coefficients are requested
// before Fit has succeeded.
var ErrNotFitted = errors.New("model has not been fitted")

// ErrSingularMatrix is returned when the normal-equation system cannot be
// solved, which typically means collinear or constant feature columns.
var ErrSingularMatrix = errors.New("singular design matrix")

// Model is an OLS linear model. A Model starts unfitted; Fit moves it to
// the fitted state exactly once per call and there is no way back.
type Model struct {
	featureNames []string
	intercept    float64
	coefs        []float64
	fitted       bool
}

// New creates an unfitted model. featureNames label the design-matrix
// columns, in order; they drive diagnostics output and the column-count
// checks between Fit and Predict.
func New(featureNames []string) *Model {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return &Model{featureNames: names}
}

// Fitted reports whether Fit has succeeded.
func (m *Model) Fitted() bool {
	return m.fitted
}

// FeatureNames returns the design-matrix column labels.
func (m *Model) FeatureNames() []string {
	names := make([]string, len(m.featureNames))
	copy(names, m.featureNames)
	return names
}

// Fit solves the normal equation X'ᵀX'θ = X'ᵀy for θ, where X' is X with a
// leading bias column of ones. X must be n×m with m matching the model's
// feature names and n ≥ m+1.
func (m *Model) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("empty design matrix")
	}
	if n != len(y) {
		return fmt.Errorf("design matrix has %d rows but target has %d values", n, len(y))
	}
	cols := len(m.featureNames)
	for i, row := range X {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), cols)
		}
	}
	if n < cols+1 {
		return fmt.Errorf("need at least %d rows to fit %d features, got %d", cols+1, cols, n)
	}

	// A = X'ᵀX', b = X'ᵀy with X'[i] = [1, X[i]...]. Both are built
	// directly from X so the bias column is never materialized.
	dim := cols + 1
	A := make([][]float64, dim)
	for i := range A {
		A[i] = make([]float64, dim)
	}
	b := make([]float64, dim)

	at := func(row []float64, j int) float64 {
		if j == 0 {
			return 1
		}
		return row[j-1]
	}
	for _, row := range X {
		for i := 0; i < dim; i++ {
			for j := i; j < dim; j++ {
				A[i][j] += at(row, i) * at(row, j)
			}
		}
	}
	for i := 1; i < dim; i++ {
		for j := 0; j < i; j++ {
			A[i][j] = A[j][i]
		}
	}
	for k, row := range X {
		for i := 0; i < dim; i++ {
			b[i] += at(row, i) * y[k]
		}
	}

	theta, err := solve(A, b)
	if err != nil {
		return fmt.Errorf("fitting %v: %w", m.featureNames, err)
	}

	m.intercept = theta[0]
	m.coefs = theta[1:]
	m.fitted = true
	return nil
}

// solve performs in-place Gaussian elimination with partial pivoting on the
// augmented system [A|b]. At each step the remaining row with the largest
// absolute coefficient in the current column is swapped into pivot
// position; a pivot below pivotEpsilon reports the system as singular.
func solve(A [][]float64, b []float64) ([]float64, error) {
	n := len(A)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(A[row][col]) > math.Abs(A[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(A[pivot][col]) < pivotEpsilon {
			return nil, fmt.Errorf("%w: pivot %g at column %d", ErrSingularMatrix, A[pivot][col], col)
		}
		if pivot != col {
			A[col], A[pivot] = A[pivot], A[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		for row := col + 1; row < n; row++ {
			factor := A[row][col] / A[col][col]
			if factor == 0 {
				continue
			}
			for j := col; j < n; j++ {
				A[row][j] -= factor * A[col][j]
			}
			b[row] -= factor * b[col]
		}
	}

	// Back substitution.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= A[i][j] * x[j]
		}
		x[i] = sum / A[i][i]
	}
	return x, nil
}

// Predict applies the fitted model to each row of X.
func (m *Model) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	preds := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.coefs) {
			return nil, fmt.Errorf("row %d has %d features, model was fitted with %d", i, len(row), len(m.coefs))
		}
		p := m.intercept
		for j, v := range row {
			p += m.coefs[j] * v
		}
		preds[i] = p
	}
	return preds, nil
}

// PredictOne applies the fitted model to a single feature vector.
func (m *Model) PredictOne(x []float64) (float64, error) {
	preds, err := m.Predict([][]float64{x})
	if err != nil {
		return 0, err
	}
	return preds[0], nil
}

// Coefficients returns the intercept and the per-feature coefficients.
func (m *Model) Coefficients() (intercept float64, coefs []float64, err error) {
	if !m.fitted {
		return 0, nil, ErrNotFitted
	}
	out := make([]float64, len(m.coefs))
	copy(out, m.coefs)
	return m.intercept, out, nil
}

// NamedCoefficients returns the coefficients keyed by feature name.
func (m *Model) NamedCoefficients() (map[string]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	out := make(map[string]float64, len(m.coefs))
	for i, name := range m.featureNames {
		out[name] = m.coefs[i]
	}
	return out, nil
}

// MeanSquaredError returns mean((yTrue-yPred)²).
func MeanSquaredError(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("got %d true values and %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, errors.New("empty input")
	}
	var sum float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

// RSquared returns the coefficient of determination 1 − SSres/SStot.
// A constant target (SStot == 0) yields 0 by policy.
func RSquared(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("got %d true values and %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, errors.New("empty input")
	}

	var meanY float64
	for _, v := range yTrue {
		meanY += v
	}
	meanY /= float64(len(yTrue))

	var ssRes, ssTot float64
	for i := range yTrue {
		r := yTrue[i] - yPred[i]
		d := yTrue[i] - meanY
		ssRes += r * r
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}
