package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/revpulse/revpulse/internal/insights"
	"github.com/revpulse/revpulse/internal/report"
)

func runExport(cmd *cobra.Command, args []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")

	if inPath == "" {
		return fmt.Errorf("--in is required")
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read result %s: %w", inPath, err)
	}

	var result insights.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("parse result %s: %w", inPath, err)
	}

	if err := report.WriteWorkbook(outPath, result); err != nil {
		return err
	}

	log.Info().
		Str("in", inPath).
		Str("out", outPath).
		Int("top3", len(result.Top3)).
		Int("compression", len(result.Compression)).
		Int("other", len(result.OtherInsights)).
		Msg("Workbook exported")

	return nil
}
