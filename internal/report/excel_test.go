package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/revpulse/revpulse/internal/insights"
)

func TestWriteWorkbook(t *testing.T) {
	score := 0.8123
	result := insights.Result{
		Top3: []insights.Card{{
			Type:       insights.TypeTop3,
			Severity:   insights.SeverityHot,
			Title:      "HOT — Fri 12/09",
			What:       "90% booked",
			Confidence: insights.LevelHigh,
			Score:      &score,
			StayDates:  []string{"2026-09-12"},
			Reasons:    []string{"OCC 90%", "10 RN left"},
		}},
		Compression: []insights.Card{},
		OtherInsights: []insights.Card{{
			Type:       insights.TypeCancelTier1,
			Severity:   insights.SeverityInfo,
			Title:      "Cancellations 8.0%",
			Confidence: insights.LevelMedium,
		}},
	}

	path := filepath.Join(t.TempDir(), "insights.xlsx")
	require.NoError(t, WriteWorkbook(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Top 3", "Compression", "Other Insights"}, f.GetSheetList())

	header, err := f.GetCellValue("Top 3", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Type", header)

	title, err := f.GetCellValue("Top 3", "C2")
	require.NoError(t, err)
	assert.Equal(t, "HOT — Fri 12/09", title)

	scoreCell, err := f.GetCellValue("Top 3", "I2")
	require.NoError(t, err)
	assert.Equal(t, "0.8123", scoreCell)

	reasons, err := f.GetCellValue("Top 3", "K2")
	require.NoError(t, err)
	assert.Equal(t, "OCC 90%; 10 RN left", reasons)

	otherTitle, err := f.GetCellValue("Other Insights", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Cancellations 8.0%", otherTitle)

	// An empty list still gets its header row.
	compHeader, err := f.GetCellValue("Compression", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Type", compHeader)
}
