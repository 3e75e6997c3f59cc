package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/report"
	"github.com/nmoreland/gridiron/internal/stats"
)

var (
	flagChartInput       string
	flagChartDB          string
	flagChartProjections string
	flagChartTargetYear  int
	flagChartOut         string
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the ranking and correlation matrix as an HTML report",
		RunE:  runChart,
	}

	cmd.Flags().StringVar(&flagChartInput, "input", "", "Historical dataset CSV (defaults to the database)")
	cmd.Flags().StringVar(&flagChartDB, "db", "", "Database path (defaults to config)")
	cmd.Flags().StringVar(&flagChartProjections, "projections", "", "Projected-season CSV to rank")
	cmd.Flags().IntVar(&flagChartTargetYear, "target-year", 0, "Rank this stored season instead of a projections file")
	cmd.Flags().StringVar(&flagChartOut, "out", "report.html", "Output HTML path")
	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	if flagChartProjections == "" && flagChartTargetYear == 0 {
		return fmt.Errorf("nothing to rank: pass --projections or --target-year")
	}

	histFilter := &dataset.Filter{}
	targetYear := flagChartTargetYear
	if targetYear != 0 {
		histFilter.ToYear = targetYear - 1
	}
	historical, err := loadRows(flagChartInput, flagChartDB, histFilter)
	if err != nil {
		return err
	}

	var candidates []features.Row
	if flagChartProjections != "" {
		records, err := readProjections(flagChartProjections)
		if err != nil {
			return err
		}
		if candidates, err = features.Derive(records, cfg.Profile); err != nil {
			return err
		}
		if len(candidates) > 0 {
			targetYear = candidates[0].Record.Year
		}
	} else {
		yearFilter := &dataset.Filter{FromYear: targetYear, ToYear: targetYear}
		if candidates, err = loadRows(flagChartInput, flagChartDB, yearFilter); err != nil {
			return err
		}
	}

	pipeline := predict.NewPipeline(cfg.Profile, cfg.Rank, nil)
	rankings, _, err := pipeline.Project(historical, candidates)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	matrix, err := stats.CorrelationMatrix(predict.FeatureColumns(historical))
	if err != nil {
		return fmt.Errorf("computing matrix: %w", err)
	}

	config := report.DefaultChartConfig()
	if targetYear > 0 {
		config.Subtitle = fmt.Sprintf("%d season", targetYear)
	}
	if err := report.RenderReport(rankings, matrix, config, flagChartOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagChartOut)
	return nil
}
