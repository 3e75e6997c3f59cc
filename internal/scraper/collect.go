package scraper

import (
	"fmt"
	"time"

	"github.com/nmoreland/gridiron/internal/logger"
	"github.com/nmoreland/gridiron/internal/team"
)

// DefaultDelay is the pause between standings page fetches. Public stats
// sites rate-limit aggressive crawlers; one page every few seconds is
// enough for a dataset this size.
const DefaultDelay = 3 * time.Second

// Collect scrapes every season in [startYear, endYear], stamps the
// championship label from the Super Bowl winners list, and returns the
// combined records. Seasons are fetched oldest first with a delay between
// pages; a failed page aborts the run rather than producing a dataset
// with silent holes.
func (s *Scraper) Collect(startYear, endYear int, delay time.Duration) ([]*team.TeamSeason, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("start year %d is after end year %d", startYear, endYear)
	}

	champions, err := s.FetchChampions()
	if err != nil {
		return nil, fmt.Errorf("fetching champions: %w", err)
	}
	logger.Info("champions list fetched", logger.Fields{"years": len(champions)})

	var records []*team.TeamSeason
	for year := startYear; year <= endYear; year++ {
		start := time.Now()
		seasons, err := s.FetchSeason(year)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", year, err)
		}
		logger.RecordTiming("scrape.fetch", time.Since(start))
		logger.IncrCounter("scrape.pages")
		logger.AddCounter("scrape.rows", int64(len(seasons)))

		champion := champions[year]
		stamped := 0
		for _, rec := range seasons {
			if champion != "" && rec.Team == champion {
				rec.WonSuperBowl = true
				stamped++
			}
		}
		if champion != "" && stamped != 1 {
			logger.Warn("champion not matched in standings", logger.Fields{
				"year":     year,
				"champion": champion,
				"matched":  stamped,
			})
		}

		logger.Info("season scraped", logger.Fields{
			"year":  year,
			"teams": len(seasons),
		})
		records = append(records, seasons...)

		if year < endYear {
			time.Sleep(delay)
		}
	}
	return records, nil
}
