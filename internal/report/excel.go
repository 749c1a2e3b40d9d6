// Package report exports a generated insights result as an XLSX workbook
// for managers who live in spreadsheets.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/revpulse/revpulse/internal/insights"
)

var headerRow = []interface{}{
	"Type", "Severity", "Title", "What", "So What", "Do This", "Impact",
	"Confidence", "Score", "Stay Dates", "Reasons", "Pricing Hint",
}

// WriteWorkbook writes one sheet per output list.
func WriteWorkbook(path string, result insights.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name  string
		cards []insights.Card
	}{
		{"Top 3", result.Top3},
		{"Compression", result.Compression},
		{"Other Insights", result.OtherInsights},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeCards(f, sheet.name, sheet.cards); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeCards(f *excelize.File, sheet string, cards []insights.Card) error {
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	for i, card := range cards {
		score := ""
		if card.Score != nil {
			score = fmt.Sprintf("%.4f", *card.Score)
		}
		row := []interface{}{
			string(card.Type),
			string(card.Severity),
			card.Title,
			card.What,
			card.SoWhat,
			card.DoThis,
			card.Impact,
			string(card.Confidence),
			score,
			strings.Join(card.StayDates, ", "),
			strings.Join(card.Reasons, "; "),
			card.PricingHint,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
