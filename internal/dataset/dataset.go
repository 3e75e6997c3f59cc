package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nmoreland/gridiron/internal/team"
)

// headerAliases maps canonical field names to the header spellings seen
// across the source exports. Headers are compared in compact form:
// lowercased with spaces, underscores, and dots removed.
var headerAliases = map[string][]string{
	"year":              {"year", "season"},
	"team":              {"team", "teamname", "franchise"},
	"conference":        {"conference", "conf"},
	"division":          {"division", "div"},
	"wins":              {"wins", "w"},
	"losses":            {"losses", "l"},
	"ties":              {"ties", "t"},
	"points_for":        {"pointsfor", "pf", "points"},
	"points_against":    {"pointsagainst", "pa"},
	"home_record":       {"homerecord", "home"},
	"road_record":       {"roadrecord", "road", "away", "awayrecord"},
	"division_record":   {"divisionrecord", "divrecord"},
	"conference_record": {"conferencerecord", "confrecord"},
	"streak":            {"streak", "strk"},
	"last_five":         {"lastfive", "last5", "l5"},
	"won_superbowl":     {"wonsuperbowl", "yearwinner", "sbwinner", "champion", "won"},
}

func compact(header string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", ".", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(header)))
}

// resolveHeader maps a raw CSV header row to canonical field → column index.
func resolveHeader(header []string) map[string]int {
	byAlias := make(map[string]string)
	for field, aliases := range headerAliases {
		for _, a := range aliases {
			byAlias[a] = field
		}
	}

	columns := make(map[string]int)
	for i, h := range header {
		if field, ok := byAlias[compact(h)]; ok {
			// First occurrence wins; later duplicates are ignored.
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	return columns
}

// Read parses a delimited dataset into raw records. The header row is
// required; columns are recognized case-insensitively through the alias
// table. Year and team are required per row, everything else follows the
// zero-fill cleaning policy.
func Read(r io.Reader) ([]*team.TeamSeason, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := resolveHeader(header)
	if _, ok := columns["year"]; !ok {
		return nil, fmt.Errorf("no year column in header %v", header)
	}
	if _, ok := columns["team"]; !ok {
		return nil, fmt.Errorf("no team column in header %v", header)
	}

	var records []*team.TeamSeason
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line+1, err)
		}
		line++

		rec, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, columns map[string]int) (*team.TeamSeason, error) {
	get := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", get("year"))
	}
	name := get("team")
	if name == "" {
		return nil, fmt.Errorf("missing team name for year %d", year)
	}

	conf, _ := team.ParseConference(get("conference"))
	rec := team.New(year, name, conf)
	rec.Division = get("division")

	// Zero-fill policy: malformed or absent counting stats become 0.
	rec.Wins = parseCount(get("wins"))
	rec.Losses = parseCount(get("losses"))
	rec.Ties = parseCount(get("ties"))
	rec.PointsFor = parseCount(get("points_for"))
	rec.PointsAgainst = parseCount(get("points_against"))

	rec.Home = team.ParseTriple(get("home_record"))
	rec.Road = team.ParseTriple(get("road_record"))
	rec.DivisionRec = team.ParseTriple(get("division_record"))
	rec.ConferenceRec = team.ParseTriple(get("conference_record"))
	rec.LastFive = team.ParseTriple(get("last_five"))
	rec.Streak = get("streak")

	rec.WonSuperBowl = parseBool(get("won_superbowl"))
	return rec, nil
}

// parseCount parses a non-negative integer, applying the zero-fill policy
// to anything malformed or negative.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
