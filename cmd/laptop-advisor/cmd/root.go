// Package cmd implements the CLI commands for laptop-advisor.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/config"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "laptop-advisor",
	Short: "Recommend laptops and spot underpriced listings",
	Long: "An API-first service that normalizes a laptop catalog, ranks listings against a buyer's\n" +
		"budget and preferences, detects listings priced below comparable peers, and reports\n" +
		"market statistics.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")

	rootCmd.AddCommand(
		serveCmd,
		migrateCmd,
		importCommand(),
		recommendCommand(),
		dealsCommand(),
		marketCommand(),
		versionCommand(),
	)
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

func jsonOutput() bool {
	return outputFormat == "json"
}
