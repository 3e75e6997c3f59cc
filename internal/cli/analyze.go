package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/report"
	"github.com/nmoreland/gridiron/internal/stats"
)

var (
	flagAnalyzeInput    string
	flagAnalyzeDB       string
	flagAnalyzeFormat   string
	flagAnalyzeFromYear int
	flagAnalyzeToYear   int
	flagAnalyzeNoMatrix bool
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Correlate each derived feature with winning the Super Bowl",
		RunE:  runAnalyze,
	}

	cmd.Flags().StringVar(&flagAnalyzeInput, "input", "", "Dataset CSV (defaults to the database)")
	cmd.Flags().StringVar(&flagAnalyzeDB, "db", "", "Database path (defaults to config)")
	cmd.Flags().StringVar(&flagAnalyzeFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagAnalyzeFromYear, "from-year", 0, "Only analyze seasons from this year on")
	cmd.Flags().IntVar(&flagAnalyzeToYear, "to-year", 0, "Only analyze seasons up to this year")
	cmd.Flags().BoolVar(&flagAnalyzeNoMatrix, "no-matrix", false, "Skip the full feature correlation matrix")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagAnalyzeFormat)
	if err != nil {
		return err
	}

	filter := &dataset.Filter{FromYear: flagAnalyzeFromYear, ToYear: flagAnalyzeToYear}
	rows, err := loadRows(flagAnalyzeInput, flagAnalyzeDB, filter)
	if err != nil {
		return err
	}

	cols, correlations, err := predict.OutcomeCorrelations(rows)
	if err != nil {
		return fmt.Errorf("computing correlations: %w", err)
	}

	years := make(map[int]bool)
	for _, row := range rows {
		years[row.Record.Year] = true
	}
	result := &report.AnalysisResult{
		Rows:         len(rows),
		Years:        len(years),
		Correlations: correlations,
	}

	if !flagAnalyzeNoMatrix {
		if result.Matrix, err = stats.CorrelationMatrix(cols); err != nil {
			return fmt.Errorf("computing matrix: %w", err)
		}
	}
	return report.WriteAnalysis(cmd.OutOrStdout(), result, format)
}
