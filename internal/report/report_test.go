package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/stats"
)

func sampleAnalysis() *AnalysisResult {
	return &AnalysisResult{
		Rows:  64,
		Years: 2,
		Correlations: map[string]float64{
			"win_pct":            0.41,
			"net_points":         0.35,
			"scoring_efficiency": -0.02,
		},
		Matrix: &stats.Matrix{
			Names: []string{"win_pct", "net_points"},
			Cells: [][]float64{{1, 0.9}, {0.9, 1}},
		},
	}
}

func samplePrediction() *PredictionResult {
	return &PredictionResult{
		TargetYear: 2024,
		Diagnostics: &predict.Diagnostics{
			FeatureNames: []string{"win_pct", "net_points"},
			Intercept:    -0.1,
			Coefficients: map[string]float64{"win_pct": 0.8, "net_points": 0.002},
			TrainRows:    48,
			TestRows:     16,
			TrainMSE:     0.02,
			TrainR2:      0.31,
			HasTest:      true,
			TestMSE:      0.04,
			TestR2:       -0.05,
			Degenerate:   true,
		},
		Rankings: []predict.Ranking{
			{Team: "Kansas City Chiefs", Year: 2024, Rank: 1, Score: 0.71, Confidence: 38.2, WinPct: 0.82},
			{Team: "San Francisco 49ers", Year: 2024, Rank: 2, Score: 0.55, Confidence: 29.6, WinPct: 0.71},
		},
	}
}

func TestWriteAnalysisText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, sampleAnalysis(), FormatText); err != nil {
		t.Fatalf("WriteAnalysis failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "64 team seasons") {
		t.Errorf("missing row count in output:\n%s", out)
	}
	// Ordered by magnitude: win_pct leads.
	winIdx := strings.Index(out, "win_pct")
	effIdx := strings.Index(out, "scoring_efficiency")
	if winIdx < 0 || effIdx < 0 || winIdx > effIdx {
		t.Errorf("expected win_pct before scoring_efficiency:\n%s", out)
	}
	if !strings.Contains(out, "correlation matrix") {
		t.Errorf("missing matrix section:\n%s", out)
	}
}

func TestWriteAnalysisJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, sampleAnalysis(), FormatJSON); err != nil {
		t.Fatalf("WriteAnalysis failed: %v", err)
	}

	var decoded AnalysisResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Rows != 64 || decoded.Correlations["win_pct"] != 0.41 {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}

func TestWritePredictionText(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePrediction(&buf, samplePrediction(), FormatText); err != nil {
		t.Fatalf("WritePrediction failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Predicted 2024 Super Bowl ranking") {
		t.Errorf("missing ranking header:\n%s", out)
	}
	if !strings.Contains(out, "Kansas City Chiefs") {
		t.Errorf("missing ranked team:\n%s", out)
	}
	if !strings.Contains(out, "WARNING: test R² is negative") {
		t.Errorf("degenerate fit not surfaced:\n%s", out)
	}
}

func TestWritePredictionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePrediction(&buf, samplePrediction(), FormatJSON); err != nil {
		t.Fatalf("WritePrediction failed: %v", err)
	}

	var decoded PredictionResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Rankings) != 2 || decoded.Rankings[0].Rank != 1 {
		t.Errorf("round-trip mismatch: %+v", decoded.Rankings)
	}
	if !decoded.Diagnostics.Degenerate {
		t.Error("degenerate flag lost in JSON output")
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("text"); err != nil {
		t.Errorf("text should be valid: %v", err)
	}
	if _, err := ParseFormat("json"); err != nil {
		t.Errorf("json should be valid: %v", err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestRenderReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	p := samplePrediction()
	a := sampleAnalysis()

	if err := RenderReport(p.Rankings, a.Matrix, DefaultChartConfig(), path); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "Kansas City Chiefs") {
		t.Error("ranking data missing from rendered chart")
	}
	if !strings.Contains(html, "echarts") {
		t.Error("expected an echarts HTML document")
	}
}
