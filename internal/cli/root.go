package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmoreland/gridiron/internal/config"
	"github.com/nmoreland/gridiron/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagLogLevel string

	cfg *config.Config
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridiron",
		Short: "NFL season scraping and Super Bowl prediction pipeline",
		Long: `Scrapes NFL standings and Super Bowl results into a local database,
derives per-season features, and ranks teams by championship likelihood
using correlation analysis and a least-squares model.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/gridiron/config.toml)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newScrapeCmd(),
		newExportCmd(),
		newAnalyzeCmd(),
		newPredictCmd(),
		newChartCmd(),
		newServeCmd(),
	)
	return cmd
}

// setup loads configuration and wires the default logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.App.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(parsed, os.Stderr))
	return nil
}

func parseLevel(s string) (logger.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logger.LevelDebug, nil
	case "info", "":
		return logger.LevelInfo, nil
	case "warn":
		return logger.LevelWarn, nil
	case "error":
		return logger.LevelError, nil
	}
	return "", fmt.Errorf("unknown log level: %s", s)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
