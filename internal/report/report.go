package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/stats"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// AnalysisResult contains the correlation analysis to be output.
type AnalysisResult struct {
	Rows         int                `json:"rows"`
	Years        int                `json:"years"`
	Correlations map[string]float64 `json:"outcome_correlations"`
	Matrix       *stats.Matrix      `json:"matrix,omitempty"`
}

// PredictionResult contains a fitted model's diagnostics and the ranking.
type PredictionResult struct {
	TargetYear  int                  `json:"target_year,omitempty"`
	Diagnostics *predict.Diagnostics `json:"diagnostics"`
	Rankings    []predict.Ranking    `json:"rankings"`
}

// WriteAnalysis writes the correlation analysis in the specified format.
func WriteAnalysis(w io.Writer, result *AnalysisResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeAnalysisText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WritePrediction writes diagnostics and rankings in the specified format.
func WritePrediction(w io.Writer, result *PredictionResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writePredictionText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// sortedByMagnitude orders feature names by |correlation| descending, so
// the strongest signals lead the report.
func sortedByMagnitude(correlations map[string]float64) []string {
	names := make([]string, 0, len(correlations))
	for name := range correlations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := correlations[names[i]], correlations[names[j]]
		if abs(ci) != abs(cj) {
			return abs(ci) > abs(cj)
		}
		return names[i] < names[j]
	})
	return names
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func writeAnalysisText(w io.Writer, result *AnalysisResult) error {
	fmt.Fprintf(w, "Analyzed %d team seasons across %d years\n", result.Rows, result.Years)

	fmt.Fprintf(w, "\nFeature correlation with winning the Super Bowl:\n")
	for _, name := range sortedByMagnitude(result.Correlations) {
		fmt.Fprintf(w, "  %-28s %+.4f\n", name, result.Correlations[name])
	}

	if result.Matrix != nil {
		fmt.Fprintf(w, "\nFeature correlation matrix:\n")
		writeMatrixText(w, result.Matrix)
	}
	return nil
}

// writeMatrixText prints the matrix with abbreviated column headers; full
// feature names are long, so columns are numbered and indexed in a legend.
func writeMatrixText(w io.Writer, m *stats.Matrix) {
	for i, name := range m.Names {
		fmt.Fprintf(w, "  [%2d] %s\n", i+1, name)
	}

	fmt.Fprintf(w, "\n  %-5s", "")
	for i := range m.Names {
		fmt.Fprintf(w, "  [%2d] ", i+1)
	}
	fmt.Fprintln(w)

	for i := range m.Names {
		fmt.Fprintf(w, "  [%2d]", i+1)
		for j := range m.Names {
			fmt.Fprintf(w, " %+.3f", m.Cells[i][j])
		}
		fmt.Fprintln(w)
	}
}

func writePredictionText(w io.Writer, result *PredictionResult) error {
	d := result.Diagnostics
	if d != nil {
		fmt.Fprintf(w, "Model fitted on %d rows", d.TrainRows)
		if d.HasTest {
			fmt.Fprintf(w, " (%d held out)", d.TestRows)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "  Train MSE %.4f, R² %.4f\n", d.TrainMSE, d.TrainR2)
		if d.HasTest {
			fmt.Fprintf(w, "  Test  MSE %.4f, R² %.4f\n", d.TestMSE, d.TestR2)
		}
		if d.Degenerate {
			fmt.Fprintln(w, "  WARNING: test R² is negative; the model predicts worse than the mean")
		}

		fmt.Fprintf(w, "\nCoefficients (intercept %+.4f):\n", d.Intercept)
		for _, name := range d.FeatureNames {
			fmt.Fprintf(w, "  %-28s %+.4f\n", name, d.Coefficients[name])
		}
	}

	if result.TargetYear > 0 {
		fmt.Fprintf(w, "\nPredicted %d Super Bowl ranking:\n", result.TargetYear)
	} else {
		fmt.Fprintf(w, "\nPredicted Super Bowl ranking:\n")
	}
	fmt.Fprintf(w, "  %4s  %-26s %8s %11s %8s\n", "Rank", "Team", "Score", "Confidence", "Win%")
	for _, r := range result.Rankings {
		fmt.Fprintf(w, "  %4d  %-26s %8.4f %10.1f%% %8.3f\n",
			r.Rank, r.Team, r.Score, r.Confidence, r.WinPct)
	}
	return nil
}
