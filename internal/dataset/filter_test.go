package dataset

import (
	"testing"

	"github.com/nmoreland/gridiron/internal/team"
)

func testRecords() []*team.TeamSeason {
	mk := func(year int, name string, conf team.Conference) *team.TeamSeason {
		r := team.New(year, name, conf)
		r.Wins = 10
		r.Losses = 7
		return r
	}
	return []*team.TeamSeason{
		mk(2020, "Kansas City Chiefs", team.AFC),
		mk(2021, "Kansas City Chiefs", team.AFC),
		mk(2021, "Green Bay Packers", team.NFC),
		mk(2022, "Philadelphia Eagles", team.NFC),
		mk(2023, "Baltimore Ravens", team.AFC),
	}
}

func TestFilterEmpty(t *testing.T) {
	f := &Filter{}
	if !f.IsEmpty() {
		t.Error("zero-value filter should be empty")
	}
	records := testRecords()
	if got := f.Apply(records); len(got) != len(records) {
		t.Errorf("empty filter should pass everything, got %d of %d", len(got), len(records))
	}
}

func TestFilterYearRange(t *testing.T) {
	f := &Filter{FromYear: 2021, ToYear: 2022}
	got := f.Apply(testRecords())
	if len(got) != 3 {
		t.Fatalf("expected 3 records in 2021-2022, got %d", len(got))
	}
	for _, r := range got {
		if r.Year < 2021 || r.Year > 2022 {
			t.Errorf("record %s outside range", r.Key())
		}
	}
}

func TestFilterConference(t *testing.T) {
	f := &Filter{Conference: team.NFC}
	got := f.Apply(testRecords())
	if len(got) != 2 {
		t.Fatalf("expected 2 NFC records, got %d", len(got))
	}
	for _, r := range got {
		if r.Conference != team.NFC {
			t.Errorf("record %s is not NFC", r.Key())
		}
	}
}

func TestFilterTeamSubstring(t *testing.T) {
	f := &Filter{Teams: []string{"chiefs", " ravens "}}
	got := f.Apply(testRecords())
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
}

func TestFilterCombined(t *testing.T) {
	f := &Filter{FromYear: 2021, Conference: team.AFC, Teams: []string{"chiefs"}}
	got := f.Apply(testRecords())
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(got))
	}
	if got[0].Year != 2021 {
		t.Errorf("expected the 2021 Chiefs, got %s", got[0].Key())
	}
}
