package cli

import (
	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/api"
)

var (
	flagServeAddr string
	flagServeDB   string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored seasons and rankings as a JSON API",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagServeAddr, "addr", ":8714", "Listen address")
	cmd.Flags().StringVar(&flagServeDB, "db", "", "Database path (defaults to config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore(flagServeDB)
	if err != nil {
		return err
	}
	defer st.Close()

	server := api.NewServer(st, cfg.Profile, cfg.Rank, nil)
	return server.ListenAndServe(flagServeAddr)
}
