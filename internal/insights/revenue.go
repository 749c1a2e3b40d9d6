package insights

import "math"

// generateRevenue aggregates the 30-day horizon into one revenue
// opportunity card. Returns nil when there is nothing left to sell.
// The price-recommendation aggregate is only trusted above LOW confidence;
// otherwise the card falls back to a rough remaining x ADR estimate and
// says so.
func (e *Engine) generateRevenue(days30 []DayData, capacity int, fm Formatter, dims Dimensions) *Card {
	conf := CardConfidence(TypeRevenueOpportunity, dims)

	totalRemaining := 0.0
	for _, d := range days30 {
		totalRemaining += remaining(d, capacity)
	}
	if totalRemaining == 0 {
		return nil
	}

	hasRecs := false
	for _, d := range days30 {
		if d.ExpectedRevenue != nil {
			hasRecs = true
			break
		}
	}

	var impact string
	if hasRecs && conf != LevelLow {
		estimate := 0.0
		baseline := 0.0
		for _, d := range days30 {
			estimate += fval(d.ExpectedRevenue, 0)
			baseline += remaining(d, capacity) * fval(d.CurrentPrice, d.ADR())
		}
		uplift := estimate - baseline

		pct := 0.0
		if uplift > 0 && estimate > uplift {
			pct = uplift / (estimate - uplift) * 100
		}
		impact = e.tr.T("insights.revenue.impact_recs", map[string]any{
			"amount": fm.Money(uplift),
			"pct":    fm.Pct1(pct),
		})
	} else {
		avgADR := 0.0
		for _, d := range days30 {
			avgADR += d.ADR()
		}
		avgADR /= math.Max(float64(len(days30)), 1)
		estimate := totalRemaining * avgADR

		if conf == LevelLow {
			impact = e.tr.T("insights.revenue.impact_rough", map[string]any{
				"amount": fm.Money(estimate),
			})
		} else {
			impact = e.tr.T("insights.revenue.impact_adr", map[string]any{
				"amount": fm.Money(estimate),
			})
		}
	}

	noForecastDays := 0
	for _, d := range days30 {
		if d.ForecastDemand == nil {
			noForecastDays++
		}
	}

	var soWhat string
	if noForecastDays > 0 {
		soWhat = e.tr.T("insights.revenue.so_what_missing", map[string]any{
			"days": fm.Count(float64(noForecastDays)),
		})
	} else {
		soWhat = e.tr.T("insights.revenue.so_what_full", nil)
	}

	var doThis string
	switch {
	case conf == LevelLow:
		doThis = e.tr.T("insights.low_confidence.do_this", nil)
	case noForecastDays > 0:
		doThis = e.tr.T("insights.revenue.do_this_missing", map[string]any{
			"days": fm.Count(float64(noForecastDays)),
		})
	default:
		doThis = e.tr.T("insights.revenue.do_this_recs", nil)
	}

	return &Card{
		Type:     TypeRevenueOpportunity,
		Severity: SeverityInfo,
		Title:    e.tr.T("insights.revenue.title", nil),
		What: e.tr.T("insights.revenue.what", map[string]any{
			"remaining": fm.Count(totalRemaining),
		}),
		SoWhat:     soWhat,
		DoThis:     doThis,
		Impact:     impact,
		Confidence: conf,
	}
}
