package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "RevPulse"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional; deployments usually set variables directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "revpulse",
		Short:   "Revenue-management decision support for hotels",
		Version: version,
		Long: appName + ` turns a daily booking snapshot into a short, ranked list of
actions a hotel manager can take in minutes: compression alerts, a revenue
opportunity summary, pace vs last year, pickup acceleration, cancellation
risk, and channel-mix leakage.`,
	}

	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insight cards from a booking snapshot",
		Long:  "Runs the insights engine against a snapshot file and prints or writes the ranked result",
		RunE:  runInsights,
	}
	addInsightsFlags(insightsCmd.Flags())

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a generated result to an XLSX workbook",
		RunE:  runExport,
	}
	exportCmd.Flags().String("in", "", "Result JSON file produced by `revpulse insights --out` (required)")
	exportCmd.Flags().String("out", "insights.xlsx", "Workbook path to write")

	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
