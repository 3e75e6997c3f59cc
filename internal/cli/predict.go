package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/report"
)

var (
	flagPredictInput       string
	flagPredictDB          string
	flagPredictProjections string
	flagPredictTargetYear  int
	flagPredictFormat      string
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fit the model on historical seasons and rank candidates",
		Long: `Fits a least-squares model on historical seasons and ranks candidate
teams by championship likelihood.

Candidates come from a projected-season CSV (--projections), or from one
stored season picked with --target-year, which is then excluded from
training.`,
		RunE: runPredict,
	}

	cmd.Flags().StringVar(&flagPredictInput, "input", "", "Historical dataset CSV (defaults to the database)")
	cmd.Flags().StringVar(&flagPredictDB, "db", "", "Database path (defaults to config)")
	cmd.Flags().StringVar(&flagPredictProjections, "projections", "", "Projected-season CSV to rank")
	cmd.Flags().IntVar(&flagPredictTargetYear, "target-year", 0, "Rank this stored season instead of a projections file")
	cmd.Flags().StringVar(&flagPredictFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagPredictFormat)
	if err != nil {
		return err
	}
	if flagPredictProjections == "" && flagPredictTargetYear == 0 {
		return fmt.Errorf("nothing to rank: pass --projections or --target-year")
	}
	if flagPredictProjections != "" && flagPredictTargetYear != 0 {
		return fmt.Errorf("--projections and --target-year are mutually exclusive")
	}

	histFilter := &dataset.Filter{}
	targetYear := flagPredictTargetYear
	if targetYear != 0 {
		// Never train on the season being predicted.
		histFilter.ToYear = targetYear - 1
	}

	historical, err := loadRows(flagPredictInput, flagPredictDB, histFilter)
	if err != nil {
		return err
	}

	var candidates []features.Row
	if flagPredictProjections != "" {
		records, err := readProjections(flagPredictProjections)
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
		if candidates, err = loadRows(flagPredictInput, flagPredictDB, yearFilter); err != nil {
			return err
		}
	}

	pipeline := predict.NewPipeline(cfg.Profile, cfg.Rank, nil)
	rankings, diag, err := pipeline.Project(historical, candidates)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	result := &report.PredictionResult{
		TargetYear:  targetYear,
		Diagnostics: diag,
		Rankings:    rankings,
	}
	return report.WritePrediction(cmd.OutOrStdout(), result, format)
}
