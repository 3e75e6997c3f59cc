package cli

import (
	"fmt"
	"os"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/store"
	"github.com/nmoreland/gridiron/internal/team"
)

// loadRecords reads raw records from a CSV file when input is set,
// otherwise from the configured store, applying the filter either way.
func loadRecords(input, dbPath string, filter *dataset.Filter) ([]*team.TeamSeason, error) {
	var records []*team.TeamSeason

	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", input, err)
		}
		defer f.Close()

		records, err = dataset.Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", input, err)
		}
	} else {
		st, err := openStore(dbPath)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		records, err = st.LoadAll()
		if err != nil {
			return nil, err
		}
	}

	records = filter.Apply(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("no records matched; scrape some seasons or loosen the filter")
	}
	return records, nil
}

// loadRows loads records and derives their features using the configured
// profile weights.
func loadRows(input, dbPath string, filter *dataset.Filter) ([]features.Row, error) {
	records, err := loadRecords(input, dbPath, filter)
	if err != nil {
		return nil, err
	}
	return features.Derive(records, cfg.Profile)
}

// openStore opens the store at dbPath, falling back to the configured
// database path.
func openStore(dbPath string) (*store.Store, error) {
	if dbPath == "" {
		dbPath = cfg.Data.Database
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

// readProjections reads a projected-season CSV. Projected rows carry no
// outcome; any outcome column present is ignored by clearing the label.
func readProjections(path string) ([]*team.TeamSeason, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := dataset.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, r := range records {
		r.WonSuperBowl = false
	}
	return records, nil
}
