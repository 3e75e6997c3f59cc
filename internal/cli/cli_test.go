package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/logger"
	"github.com/nmoreland/gridiron/internal/team"
)

// runCommand executes the CLI against a nonexistent config file, so every
// run starts from the default configuration.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

// writeDataset generates reproducible seasons and writes the consolidated
// CSV; the returned path feeds --input flags.
func writeDataset(t *testing.T, years []int, teamsPerYear int, withChampions bool) string {
	t.Helper()

	var records []*team.TeamSeason
	for _, year := range years {
		rng := rand.New(rand.NewSource(int64(year)))
		best, bestIdx := -1, 0
		for i := 0; i < teamsPerYear; i++ {
			wins := rng.Intn(13) + 2
			r := &team.TeamSeason{
				Year:          year,
				Team:          fmt.Sprintf("Team %c", 'A'+i),
				Conference:    team.AFC,
				Wins:          wins,
				Losses:        17 - wins,
				PointsFor:     250 + rng.Intn(250),
				PointsAgainst: 250 + rng.Intn(250),
				Home:          team.Triple{Wins: rng.Intn(8) + 1, Losses: rng.Intn(8)},
				Road:          team.Triple{Wins: rng.Intn(8), Losses: rng.Intn(8) + 1},
				DivisionRec:   team.Triple{Wins: rng.Intn(6) + 1, Losses: rng.Intn(5)},
				ConferenceRec: team.Triple{Wins: rng.Intn(10) + 1, Losses: rng.Intn(6)},
			}
			if wins > best {
				best = wins
				bestIdx = len(records)
			}
			records = append(records, r)
		}
		if withChampions {
			records[bestIdx].WonSuperBowl = true
		}
	}

	rows, err := features.Derive(records, features.DefaultProfileWeights())
	if err != nil {
		t.Fatalf("deriving features: %v", err)
	}

	path := filepath.Join(t.TempDir(), "dataset.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := dataset.Write(f, rows); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestAnalyzeCommandText(t *testing.T) {
	input := writeDataset(t, []int{2020, 2021, 2022, 2023}, 8, true)

	out, err := runCommand(t, "analyze", "--input", input)
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "32 team seasons") {
		t.Errorf("missing row count:\n%s", out)
	}
	if !strings.Contains(out, "win_pct") {
		t.Errorf("missing feature correlations:\n%s", out)
	}
	if !strings.Contains(out, "correlation matrix") {
		t.Errorf("missing matrix section:\n%s", out)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	input := writeDataset(t, []int{2022, 2023}, 8, true)

	out, err := runCommand(t, "analyze", "--input", input, "--format", "json", "--no-matrix")
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}

	var decoded struct {
		Rows         int                `json:"rows"`
		Correlations map[string]float64 `json:"outcome_correlations"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Rows != 16 || len(decoded.Correlations) != len(features.Names()) {
		t.Errorf("unexpected analysis payload: %+v", decoded)
	}
}

func TestAnalyzeCommandBadFormat(t *testing.T) {
	input := writeDataset(t, []int{2023}, 4, true)
	if _, err := runCommand(t, "analyze", "--input", input, "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestPredictCommandWithProjections(t *testing.T) {
	historical := writeDataset(t, []int{2019, 2020, 2021, 2022, 2023}, 8, true)
	projections := writeDataset(t, []int{2024}, 8, false)

	out, err := runCommand(t, "predict",
		"--input", historical,
		"--projections", projections,
		"--format", "json",
	)
	if err != nil {
		t.Fatalf("predict failed: %v\n%s", err, out)
	}

	var decoded struct {
		TargetYear int `json:"target_year"`
		Rankings   []struct {
			Team string `json:"team"`
			Rank int    `json:"rank"`
		} `json:"rankings"`
		Diagnostics struct {
			TrainRows int `json:"train_rows"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.TargetYear != 2024 {
		t.Errorf("expected target year 2024, got %d", decoded.TargetYear)
	}
	if len(decoded.Rankings) != 8 || decoded.Rankings[0].Rank != 1 {
		t.Errorf("unexpected rankings: %+v", decoded.Rankings)
	}
	if decoded.Diagnostics.TrainRows == 0 {
		t.Error("missing diagnostics")
	}
}

func TestPredictCommandRequiresCandidates(t *testing.T) {
	input := writeDataset(t, []int{2022, 2023}, 8, true)
	if _, err := runCommand(t, "predict", "--input", input); err == nil {
		t.Error("expected an error when neither --projections nor --target-year is given")
	}
}

func TestExportCommandRoundTrip(t *testing.T) {
	input := writeDataset(t, []int{2022, 2023}, 6, true)
	out := filepath.Join(t.TempDir(), "out.csv")

	stdout, err := runCommand(t, "export", "--input", input, "--out", out, "--from-year", "2023")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, stdout)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	defer f.Close()

	records, err := dataset.Read(f)
	if err != nil {
		t.Fatalf("re-reading export: %v", err)
	}
	if len(records) != 6 {
		t.Errorf("expected 6 filtered rows, got %d", len(records))
	}
	for _, r := range records {
		if r.Year != 2023 {
			t.Errorf("filter leaked year %d", r.Year)
		}
	}
}

func TestChartCommand(t *testing.T) {
	historical := writeDataset(t, []int{2019, 2020, 2021, 2022, 2023}, 8, true)
	projections := writeDataset(t, []int{2024}, 8, false)
	out := filepath.Join(t.TempDir(), "report.html")

	stdout, err := runCommand(t, "chart",
		"--input", historical,
		"--projections", projections,
		"--out", out,
	)
	if err != nil {
		t.Fatalf("chart failed: %v\n%s", err, stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if !strings.Contains(string(data), "echarts") {
		t.Error("expected an echarts HTML document")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{"", logger.LevelInfo, false},
		{"warn", logger.LevelWarn, false},
		{"error", logger.LevelError, false},
		{"verbose", "", true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
