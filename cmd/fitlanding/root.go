package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitlanding",
	Short: "Contact form and fitness quiz of the landing site",
	Long: `fitlanding validates and submits the landing page contact form,
runs the three-step fitness quiz and serves both over HTTP or MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before the configuration")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// loadConfig reads the env file and the configuration, then builds the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return nil, nil, err
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}
