package scraper

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nmoreland/gridiron/internal/team"
)

const (
	DefaultStandingsURL = "https://www.pro-football-reference.com/years/%d/"
	DefaultChampionsURL = "https://www.pro-football-reference.com/super-bowl/"
	UserAgent           = "gridiron-cli/1.0 (github.com/nmoreland/gridiron)"
	Timeout             = 30 * time.Second
)

// Scraper fetches and parses NFL standings and Super Bowl results.
type Scraper struct {
	client       *http.Client
	standingsURL string // format string taking the season year
	championsURL string
	schema       Schema
}

// Option customizes a Scraper.
type Option func(*Scraper)

// WithStandingsURL overrides the standings URL format string.
func WithStandingsURL(url string) Option {
	return func(s *Scraper) { s.standingsURL = url }
}

// WithChampionsURL overrides the Super Bowl winners URL.
func WithChampionsURL(url string) Option {
	return func(s *Scraper) { s.championsURL = url }
}

// WithSchema overrides the standings column schema.
func WithSchema(schema Schema) Option {
	return func(s *Scraper) { s.schema = schema }
}

// New creates a Scraper with the default source and schema.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		standingsURL: DefaultStandingsURL,
		championsURL: DefaultChampionsURL,
		schema:       DefaultSchema(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchSeason fetches and parses the standings page for one season.
func (s *Scraper) FetchSeason(year int) ([]*team.TeamSeason, error) {
	url := fmt.Sprintf(s.standingsURL, year)
	body, err := s.get(url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseStandings(body, year)
}

// FetchChampions fetches and parses the Super Bowl winners list, keyed by
// season year.
func (s *Scraper) FetchChampions() (map[int]string, error) {
	body, err := s.get(s.championsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseChampions(body)
}

func (s *Scraper) get(url string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// divisionPattern matches division header rows like "AFC East".
var divisionPattern = regexp.MustCompile(`^(AFC|NFC)\s+(East|West|North|South|Central)$`)

// parseStandings extracts team rows from the standings tables. Each
// conference has its own table; division header rows inside a table set
// the division for the team rows that follow.
func (s *Scraper) parseStandings(r io.Reader, year int) ([]*team.TeamSeason, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]*team.TeamSeason, 0, 32)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		conf, ok := tableConference(table)
		if !ok {
			return
		}

		division := ""
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("th, td")

			// Single-cell rows inside the body are division headers.
			text := strings.TrimSpace(cells.Text())
			if m := divisionPattern.FindStringSubmatch(text); m != nil {
				division = text
				return
			}
			if cells.Length() < len(CompactSchema()) {
				return
			}

			rec := s.parseTeamRow(cells, year, conf, division)
			if rec != nil {
				records = append(records, rec)
			}
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("no team rows found for %d", year)
	}
	return records, nil
}

// tableConference determines which conference a standings table belongs
// to, checking the table id, caption, and header text.
func tableConference(table *goquery.Selection) (team.Conference, bool) {
	candidates := []string{
		table.AttrOr("id", ""),
		table.Find("caption").Text(),
		table.Find("thead").Text(),
	}
	for _, c := range candidates {
		upper := strings.ToUpper(c)
		switch {
		case strings.Contains(upper, "AFC"):
			return team.AFC, true
		case strings.Contains(upper, "NFC"):
			return team.NFC, true
		}
	}
	return "", false
}

// parseTeamRow maps one table row onto a record through the schema.
// Returns nil for non-team rows (repeated column headers).
func (s *Scraper) parseTeamRow(cells *goquery.Selection, year int, conf team.Conference, division string) *team.TeamSeason {
	texts := make([]string, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		texts[i] = strings.TrimSpace(cell.Text())
	})

	cell := func(role ColumnRole) string {
		i := s.schema.indexOf(role)
		if i < 0 || i >= len(texts) {
			return ""
		}
		return texts[i]
	}

	name := cell(ColTeam)
	if name == "" || strings.EqualFold(name, "Tm") || strings.EqualFold(name, "Team") {
		return nil
	}
	// Header rows repeat numeric column names; a team row has a
	// parseable win count.
	wins, err := strconv.Atoi(cell(ColWins))
	if err != nil {
		return nil
	}

	rec := team.New(year, name, conf)
	rec.Division = division
	rec.Wins = wins
	rec.Losses = parseIntCell(cell(ColLosses))
	rec.Ties = parseIntCell(cell(ColTies))
	rec.PointsFor = parseIntCell(cell(ColPointsFor))
	rec.PointsAgainst = parseIntCell(cell(ColPointsAgainst))
	rec.Home = team.ParseTriple(cell(ColHomeRecord))
	rec.Road = team.ParseTriple(cell(ColRoadRecord))
	rec.DivisionRec = team.ParseTriple(cell(ColDivisionRecord))
	rec.ConferenceRec = team.ParseTriple(cell(ColConferenceRecord))
	rec.LastFive = team.ParseTriple(cell(ColLastFive))
	rec.Streak = cell(ColStreak)
	return rec
}

// parseIntCell applies the zero-fill cleaning policy to a numeric cell.
func parseIntCell(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// yearPattern extracts a 4-digit season year from a champions-list cell,
// tolerating decorations like "2023 (LVIII)".
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// parseChampions extracts season year → winning team from the Super Bowl
// winners table. Rows missing a year or winner are skipped.
func (s *Scraper) parseChampions(r io.Reader) (map[int]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	champions := make(map[int]string)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}

		yearText := strings.TrimSpace(cells.Eq(0).Text())
		m := yearPattern.FindString(yearText)
		if m == "" {
			return
		}
		year, err := strconv.Atoi(m)
		if err != nil {
			return
		}

		winner := strings.TrimSpace(cells.Eq(1).Text())
		if winner == "" {
			return
		}
		champions[year] = team.CanonicalName(winner)
	})

	if len(champions) == 0 {
		return nil, fmt.Errorf("no champions found")
	}
	return champions, nil
}
