package team

import (
	"testing"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Triple
	}{
		{
			name:     "full W-L-T",
			input:    "11-5-1",
			expected: Triple{Wins: 11, Losses: 5, Ties: 1},
		},
		{
			name:     "short W-L",
			input:    "8-1",
			expected: Triple{Wins: 8, Losses: 1},
		},
		{
			name:     "surrounding whitespace",
			input:    " 6-2-0 ",
			expected: Triple{Wins: 6, Losses: 2},
		},
		{
			name:     "malformed text falls back to zero",
			input:    "n/a",
			expected: Triple{},
		},
		{
			name:     "negative component falls back to zero",
			input:    "3--1-0",
			expected: Triple{},
		},
		{
			name:     "empty string",
			input:    "",
			expected: Triple{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTriple(tt.input)
			if got != tt.expected {
				t.Errorf("ParseTriple(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTripleWinPct(t *testing.T) {
	full := Triple{Wins: 6, Losses: 2, Ties: 0}
	if got := full.WinPct(); got != 0.75 {
		t.Errorf("expected 0.75, got %f", got)
	}

	empty := Triple{}
	if got := empty.WinPct(); got != 0 {
		t.Errorf("empty split should have win pct 0, got %f", got)
	}
	if empty.Available() {
		t.Error("empty split should not be available")
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Oakland Raiders", "Las Vegas Raiders"},
		{"San Diego Chargers", "Los Angeles Chargers"},
		{"St. Louis Rams", "Los Angeles Rams"},
		{"Houston Oilers", "Tennessee Titans"},
		{"Washington Redskins", "Washington Commanders"},
		{"Washington Football Team", "Washington Commanders"},
		{"Kansas City Chiefs", "Kansas City Chiefs"},
		{"Kansas City Chiefs*", "Kansas City Chiefs"},
		{"  Green Bay Packers ", "Green Bay Packers"},
		// The Browns/Ravens split is not a relocation alias.
		{"Cleveland Browns", "Cleveland Browns"},
		{"Baltimore Ravens", "Baltimore Ravens"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalName(tt.input); got != tt.expected {
				t.Errorf("CanonicalName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseConference(t *testing.T) {
	if c, err := ParseConference("afc"); err != nil || c != AFC {
		t.Errorf("expected AFC, got %q (err %v)", c, err)
	}
	if c, err := ParseConference("National Football Conference"); err != nil || c != NFC {
		t.Errorf("expected NFC, got %q (err %v)", c, err)
	}
	if _, err := ParseConference("XFL"); err == nil {
		t.Error("expected error for unknown conference")
	}
}

func TestTeamSeasonDerivedCounts(t *testing.T) {
	r := New(2023, "Oakland Raiders", AFC)
	r.Wins, r.Losses, r.Ties = 14, 3, 0
	r.PointsFor, r.PointsAgainst = 450, 300

	if r.Team != "Las Vegas Raiders" {
		t.Errorf("constructor should canonicalize name, got %q", r.Team)
	}
	if got := r.TotalGames(); got != 17 {
		t.Errorf("expected 17 total games, got %d", got)
	}
	if got := r.NetPoints(); got != 150 {
		t.Errorf("expected net points 150, got %d", got)
	}
	if got := r.Key(); got != "2023/Las Vegas Raiders" {
		t.Errorf("unexpected key %q", got)
	}
}
