package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/dataset"
	"github.com/nmoreland/gridiron/internal/team"
)

var (
	flagExportDB         string
	flagExportInput      string
	flagExportOut        string
	flagExportFromYear   int
	flagExportToYear     int
	flagExportConference string
	flagExportTeams      []string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the consolidated dataset (raw stats + derived features) as CSV",
		RunE:  runExport,
	}

	cmd.Flags().StringVar(&flagExportDB, "db", "", "Database path (defaults to config)")
	cmd.Flags().StringVar(&flagExportInput, "input", "", "Read raw records from a CSV instead of the database")
	cmd.Flags().StringVar(&flagExportOut, "out", "dataset.csv", "Output CSV path")
	cmd.Flags().IntVar(&flagExportFromYear, "from-year", 0, "Only include seasons from this year on")
	cmd.Flags().IntVar(&flagExportToYear, "to-year", 0, "Only include seasons up to this year")
	cmd.Flags().StringVar(&flagExportConference, "conference", "", "Only include one conference (AFC or NFC)")
	cmd.Flags().StringSliceVar(&flagExportTeams, "team", nil, "Only include teams matching these names (substring match)")
	return cmd
}

func exportFilter() (*dataset.Filter, error) {
	f := &dataset.Filter{
		FromYear: flagExportFromYear,
		ToYear:   flagExportToYear,
		Teams:    flagExportTeams,
	}
	if flagExportConference != "" {
		conf, err := team.ParseConference(flagExportConference)
		if err != nil {
			return nil, err
		}
		f.Conference = conf
	}
	return f, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := exportFilter()
	if err != nil {
		return err
	}

	rows, err := loadRows(flagExportInput, flagExportDB, filter)
	if err != nil {
		return err
	}

	out, err := os.Create(flagExportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagExportOut, err)
	}
	defer out.Close()

	if err := dataset.Write(out, rows); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), flagExportOut)
	return nil
}
