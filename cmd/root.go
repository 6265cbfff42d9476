// Package cmd contains the CLI commands of the dashboard
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ikdashboard/internal/config"
	"ikdashboard/internal/logger"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfg       *config.Config
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "ikdashboard",
	Short: "IK Wirtschaftsstatistik dashboard",
	Long: `Serves the quarterly economic indicator and foreign trade dashboards of
the plastics packaging and film industry, and renders static snapshots of
them to a local directory or a GCS bucket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			loaded.LogFormat = logFormat
		}
		if err := logger.Configure(loaded.LogLevel, loaded.LogFormat); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}
