package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
	"github.com/nmoreland/gridiron/internal/team"
)

const (
	busyTimeout = 5 * time.Second
	schema      = `
CREATE TABLE IF NOT EXISTS team_seasons (
    year              INTEGER NOT NULL,
    team              TEXT    NOT NULL,
    conference        TEXT    NOT NULL DEFAULT '',
    division          TEXT    NOT NULL DEFAULT '',
    wins              INTEGER NOT NULL DEFAULT 0,
    losses            INTEGER NOT NULL DEFAULT 0,
    ties              INTEGER NOT NULL DEFAULT 0,
    points_for        INTEGER NOT NULL DEFAULT 0,
    points_against    INTEGER NOT NULL DEFAULT 0,
    home_record       TEXT    NOT NULL DEFAULT '',
    road_record       TEXT    NOT NULL DEFAULT '',
    division_record   TEXT    NOT NULL DEFAULT '',
    conference_record TEXT    NOT NULL DEFAULT '',
    last_five         TEXT    NOT NULL DEFAULT '',
    streak            TEXT    NOT NULL DEFAULT '',
    won_superbowl     INTEGER NOT NULL DEFAULT 0,
    scraped_at        TEXT    NOT NULL,
    PRIMARY KEY (year, team)
)`
)

// Store wraps the SQLite connection holding scraped seasons.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		// Expand ~ to home directory
		if strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			path = filepath.Join(home, path[2:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// An in-memory database exists per connection; cap the pool so every
	// query sees the same one.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSeasons upserts the given records in one transaction. Existing
// (year, team) rows are refreshed in place.
func (s *Store) SaveSeasons(records []*team.TeamSeason) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO team_seasons (
    year, team, conference, division,
    wins, losses, ties, points_for, points_against,
    home_record, road_record, division_record, conference_record,
    last_five, streak, won_superbowl, scraped_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (year, team) DO UPDATE SET
    conference        = excluded.conference,
    division          = excluded.division,
    wins              = excluded.wins,
    losses            = excluded.losses,
    ties              = excluded.ties,
    points_for        = excluded.points_for,
    points_against    = excluded.points_against,
    home_record       = excluded.home_record,
    road_record       = excluded.road_record,
    division_record   = excluded.division_record,
    conference_record = excluded.conference_record,
    last_five         = excluded.last_five,
    streak            = excluded.streak,
    won_superbowl     = excluded.won_superbowl,
    scraped_at        = excluded.scraped_at
`
	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		_, err := tx.Exec(q,
			r.Year, r.Team, string(r.Conference), r.Division,
			r.Wins, r.Losses, r.Ties, r.PointsFor, r.PointsAgainst,
			tripleText(r.Home), tripleText(r.Road),
			tripleText(r.DivisionRec), tripleText(r.ConferenceRec),
			tripleText(r.LastFive), r.Streak, boolInt(r.WonSuperBowl), now,
		)
		if err != nil {
			return fmt.Errorf("saving %s: %w", r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// LoadSeasons returns records within the inclusive year range, ordered by
// year then team. Zero bounds disable the respective end.
func (s *Store) LoadSeasons(fromYear, toYear int) ([]*team.TeamSeason, error) {
	const q = `
SELECT year, team, conference, division,
       wins, losses, ties, points_for, points_against,
       home_record, road_record, division_record, conference_record,
       last_five, streak, won_superbowl
FROM team_seasons
WHERE (?1 = 0 OR year >= ?1) AND (?2 = 0 OR year <= ?2)
ORDER BY year, team
`
	rows, err := s.db.Query(q, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var records []*team.TeamSeason
	for rows.Next() {
		var (
			r          team.TeamSeason
			conf       string
			home, road string
			div, cnf   string
			lastFive   string
			won        int
		)
		if err := rows.Scan(
			&r.Year, &r.Team, &conf, &r.Division,
			&r.Wins, &r.Losses, &r.Ties, &r.PointsFor, &r.PointsAgainst,
			&home, &road, &div, &cnf, &lastFive, &r.Streak, &won,
		); err != nil {
			return nil, fmt.Errorf("scanning season row: %w", err)
		}
		r.Conference = team.Conference(conf)
		r.Home = team.ParseTriple(home)
		r.Road = team.ParseTriple(road)
		r.DivisionRec = team.ParseTriple(div)
		r.ConferenceRec = team.ParseTriple(cnf)
		r.LastFive = team.ParseTriple(lastFive)
		r.WonSuperBowl = won != 0
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating season rows: %w", err)
	}
	return records, nil
}

// LoadAll returns every stored record.
func (s *Store) LoadAll() ([]*team.TeamSeason, error) {
	return s.LoadSeasons(0, 0)
}

// Years lists the distinct seasons in the store, ascending.
func (s *Store) Years() ([]int, error) {
	rows, err := s.db.Query(`SELECT DISTINCT year FROM team_seasons ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("querying years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scanning year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// tripleText keeps unavailable splits as empty strings so a load restores
// the unavailable state instead of inventing an 0-0-0 split.
func tripleText(t team.Triple) string {
	if !t.Available() {
		return ""
	}
	return t.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
