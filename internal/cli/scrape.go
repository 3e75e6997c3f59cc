package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/logger"
	"github.com/nmoreland/gridiron/internal/scraper"
)

var (
	flagScrapeStartYear int
	flagScrapeEndYear   int
	flagScrapeDB        string
	flagScrapeDelay     string
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape standings and Super Bowl results into the local database",
		RunE:  runScrape,
	}

	cmd.Flags().IntVar(&flagScrapeStartYear, "start-year", 0, "First season to scrape (required)")
	cmd.Flags().IntVar(&flagScrapeEndYear, "end-year", 0, "Last season to scrape (defaults to start year)")
	cmd.Flags().StringVar(&flagScrapeDB, "db", "", "Database path (defaults to config)")
	cmd.Flags().StringVar(&flagScrapeDelay, "delay", "", "Pause between page fetches, e.g. 3s (defaults to config)")

	cmd.MarkFlagRequired("start-year")
	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	start := flagScrapeStartYear
	end := flagScrapeEndYear
	if end == 0 {
		end = start
	}

	delay, err := cfg.GetScrapeDelay()
	if err != nil {
		return err
	}
	if flagScrapeDelay != "" {
		if delay, err = time.ParseDuration(flagScrapeDelay); err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
	}

	st, err := openStore(flagScrapeDB)
	if err != nil {
		return err
	}
	defer st.Close()

	sc := scraper.New(
		scraper.WithStandingsURL(cfg.Scrape.StandingsURL),
		scraper.WithChampionsURL(cfg.Scrape.ChampionsURL),
	)

	records, err := sc.Collect(start, end, delay)
	if err != nil {
		return fmt.Errorf("scraping %d-%d: %w", start, end, err)
	}
	if err := st.SaveSeasons(records); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}

	logger.Info("scrape complete", logger.Fields{
		"start_year": start,
		"end_year":   end,
		"records":    len(records),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Scraped %d team seasons (%d-%d)\n", len(records), start, end)
	return nil
}
