package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreland/gridiron/internal/team"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSeasons() []*team.TeamSeason {
	return []*team.TeamSeason{
		{
			Year: 2022, Team: "Kansas City Chiefs", Conference: team.AFC,
			Division: "AFC West", Wins: 14, Losses: 3,
			PointsFor: 496, PointsAgainst: 369,
			Home:         team.Triple{Wins: 8, Losses: 1},
			Road:         team.Triple{Wins: 6, Losses: 2},
			Streak:       "W3",
			WonSuperBowl: true,
		},
		{
			Year: 2022, Team: "Philadelphia Eagles", Conference: team.NFC,
			Division: "NFC East", Wins: 14, Losses: 3,
			PointsFor: 477, PointsAgainst: 344,
		},
		{
			Year: 2023, Team: "Kansas City Chiefs", Conference: team.AFC,
			Division: "AFC West", Wins: 11, Losses: 6,
			PointsFor: 371, PointsAgainst: 294,
			WonSuperBowl: true,
		},
	}
}

func TestSaveAndLoadSeasons(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSeasons(sampleSeasons()))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Ordered by year then team.
	assert.Equal(t, "2022/Kansas City Chiefs", records[0].Key())
	assert.Equal(t, "2022/Philadelphia Eagles", records[1].Key())
	assert.Equal(t, "2023/Kansas City Chiefs", records[2].Key())

	kc := records[0]
	assert.Equal(t, team.AFC, kc.Conference)
	assert.Equal(t, "AFC West", kc.Division)
	assert.Equal(t, 14, kc.Wins)
	assert.Equal(t, 496, kc.PointsFor)
	assert.Equal(t, team.Triple{Wins: 8, Losses: 1}, kc.Home)
	assert.Equal(t, "W3", kc.Streak)
	assert.True(t, kc.WonSuperBowl)

	// Unavailable splits round-trip as unavailable, not as 0-0-0 data.
	phi := records[1]
	assert.False(t, phi.Home.Available())
	assert.False(t, phi.WonSuperBowl)
}

func TestSaveSeasonsUpsert(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSeasons(sampleSeasons()))

	// Re-save one season with corrected stats; row count must not grow.
	update := &team.TeamSeason{
		Year: 2023, Team: "Kansas City Chiefs", Conference: team.AFC,
		Division: "AFC West", Wins: 12, Losses: 5,
		PointsFor: 380, PointsAgainst: 290,
		WonSuperBowl: true,
	}
	require.NoError(t, s.SaveSeasons([]*team.TeamSeason{update}))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 12, records[2].Wins)
	assert.Equal(t, 380, records[2].PointsFor)
}

func TestLoadSeasonsYearRange(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSeasons(sampleSeasons()))

	only2023, err := s.LoadSeasons(2023, 2023)
	require.NoError(t, err)
	require.Len(t, only2023, 1)
	assert.Equal(t, 2023, only2023[0].Year)

	from2023, err := s.LoadSeasons(2023, 0)
	require.NoError(t, err)
	assert.Len(t, from2023, 1)

	upTo2022, err := s.LoadSeasons(0, 2022)
	require.NoError(t, err)
	assert.Len(t, upTo2022, 2)
}

func TestYears(t *testing.T) {
	s := openTestStore(t)

	years, err := s.Years()
	require.NoError(t, err)
	assert.Empty(t, years)

	require.NoError(t, s.SaveSeasons(sampleSeasons()))
	years, err = s.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023}, years)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "gridiron.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSeasons(sampleSeasons()[:1]))
	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
