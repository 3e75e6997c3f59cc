package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nmoreland/gridiron/internal/features"
)

// rawColumns is the fixed raw-field prefix of the consolidated export.
var rawColumns = []string{
	"year", "team", "conference", "division",
	"wins", "losses", "ties", "points_for", "points_against",
	"home_record", "road_record", "division_record", "conference_record",
	"last_five", "streak", "won_superbowl",
}

// Write emits the consolidated dataset: raw columns followed by every
// derived feature column, one row per team season, in stable column order.
func Write(w io.Writer, rows []features.Row) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, rawColumns...), features.Names()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		r := row.Record
		record := []string{
			strconv.Itoa(r.Year),
			r.Team,
			string(r.Conference),
			r.Division,
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.Ties),
			strconv.Itoa(r.PointsFor),
			strconv.Itoa(r.PointsAgainst),
			tripleField(r.Home.String(), r.Home.Available()),
			tripleField(r.Road.String(), r.Road.Available()),
			tripleField(r.DivisionRec.String(), r.DivisionRec.Available()),
			tripleField(r.ConferenceRec.String(), r.ConferenceRec.Available()),
			tripleField(r.LastFive.String(), r.LastFive.Available()),
			r.Streak,
			boolField(r.WonSuperBowl),
		}
		for _, v := range row.Features.Vector() {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Key(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// tripleField keeps unavailable splits as empty cells instead of "0-0-0",
// so re-ingesting the export preserves the unavailable state.
func tripleField(s string, available bool) string {
	if !available {
		return ""
	}
	return s
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
