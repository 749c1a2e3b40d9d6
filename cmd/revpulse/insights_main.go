package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/revpulse/revpulse/internal/config"
	"github.com/revpulse/revpulse/internal/i18n"
	"github.com/revpulse/revpulse/internal/insights"
	"github.com/revpulse/revpulse/internal/report"
	"github.com/revpulse/revpulse/internal/snapshot"
)

func addInsightsFlags(flags *pflag.FlagSet) {
	flags.String("snapshot", "", "Booking snapshot JSON file (required)")
	flags.String("config", "", "Insights config YAML (defaults are used when omitted)")
	flags.String("locale", "", "Locale override for card text (en, vi)")
	flags.String("as-of", "", "Reference date YYYY-MM-DD (defaults to the snapshot's as_of)")
	flags.String("out", "", "Write the result JSON here instead of stdout")
	flags.String("xlsx", "", "Also export the result as an XLSX workbook")
}

func runInsights(cmd *cobra.Command, args []string) error {
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	configPath, _ := cmd.Flags().GetString("config")
	localeFlag, _ := cmd.Flags().GetString("locale")
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	outPath, _ := cmd.Flags().GetString("out")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	if snapshotPath == "" {
		return fmt.Errorf("--snapshot is required")
	}

	cfg := config.DefaultInsights()
	if configPath != "" {
		loaded, err := config.LoadInsights(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	in, err := snapshot.Load(snapshotPath, log.Logger)
	if err != nil {
		return err
	}

	if asOfFlag != "" {
		asOf, err := time.Parse("2006-01-02", asOfFlag)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: %w", asOfFlag, err)
		}
		in.AsOf = asOf
	}
	if in.AsOf.IsZero() {
		in.AsOf = time.Now().Truncate(24 * time.Hour)
	}

	locale := i18n.ResolveLocale(i18n.LocaleContext{
		UserLocale:         localeFlag,
		HotelDefaultLocale: in.Locale,
		OrgDefaultLocale:   os.Getenv("REVPULSE_DEFAULT_LOCALE"),
	})
	in.Locale = locale

	catalog := i18n.NewCatalog(log.Logger)
	engine := insights.NewEngine(cfg, catalog.ForLocale(locale), log.Logger)

	log.Info().
		Str("snapshot", snapshotPath).
		Str("locale", locale).
		Time("as_of", in.AsOf).
		Msg("Generating insights")

	result := engine.Generate(in)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, payload, 0o644); err != nil {
			return fmt.Errorf("write result %s: %w", outPath, err)
		}
		log.Info().Str("path", outPath).Msg("Result written")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	}

	if xlsxPath != "" {
		if err := report.WriteWorkbook(xlsxPath, result); err != nil {
			return err
		}
		log.Info().Str("path", xlsxPath).Msg("Workbook written")
	}

	return nil
}
