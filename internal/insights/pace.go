package insights

import "math"

// generatePace compares the 30-day book against same-time-last-year and
// decomposes the revenue delta into a volume effect and a rate effect; the
// larger term names the driver the guidance is built around. Requires at
// least 5 days with both pace and STLY revenue, otherwise nil.
func (e *Engine) generatePace(days30 []DayData, capacity int, fm Formatter, dims Dimensions) *Card {
	conf := CardConfidence(TypePaceSTLY, dims)

	withSTLY := []DayData{}
	for _, d := range days30 {
		if d.PaceVsLY != nil && d.STLYRevenueOTB != nil {
			withSTLY = append(withSTLY, d)
		}
	}
	if len(withSTLY) < 5 {
		return nil
	}

	totalRN := 0.0
	totalRevenue := 0.0
	for _, d := range days30 {
		totalRN += float64(d.RoomsOTB)
		totalRevenue += d.RevenueOTB
	}

	// Last-year rooms are reconstructed from pace: current - paceVsLy.
	stlyRN := 0.0
	stlyRevenue := 0.0
	for _, d := range withSTLY {
		stlyRN += float64(d.RoomsOTB) - fval(d.PaceVsLY, 0)
		stlyRevenue += fval(d.STLYRevenueOTB, 0)
	}

	rnDelta := totalRN - stlyRN

	adrCurrent := 0.0
	if totalRN > 0 {
		adrCurrent = totalRevenue / totalRN
	}
	adrSTLY := 0.0
	if stlyRN > 0 {
		adrSTLY = stlyRevenue / stlyRN
	}

	deltaVolume := (totalRN - stlyRN) * adrSTLY
	deltaRate := (adrCurrent - adrSTLY) * totalRN
	rateDriven := math.Abs(deltaRate) >= math.Abs(deltaVolume)

	isAhead := rnDelta >= 0

	rnPct := 0.0
	if stlyRN > 0 {
		rnPct = math.Round(rnDelta / stlyRN * 100)
	}
	adrPct := 0.0
	if adrSTLY > 0 {
		adrPct = math.Round((adrCurrent - adrSTLY) / adrSTLY * 100)
	}

	revPAR := totalRevenue / (float64(capacity) * float64(len(days30)))
	stlyRevPAR := stlyRevenue / (float64(capacity) * float64(len(withSTLY)))
	revPARPct := 0.0
	if stlyRevPAR > 0 {
		revPARPct = math.Round((revPAR - stlyRevPAR) / stlyRevPAR * 100)
	}

	titleKey := "insights.pace.title_behind"
	severity := SeverityWarning
	if isAhead {
		titleKey = "insights.pace.title_ahead"
		severity = SeveritySuccess
	}

	directionKey := "insights.pace.direction_down"
	if isAhead {
		directionKey = "insights.pace.direction_up"
	}
	driverKey := "insights.pace.driver_volume"
	if rateDriven {
		driverKey = "insights.pace.driver_rate"
	}

	var doThis string
	if conf == LevelLow {
		doThis = e.tr.T("insights.low_confidence.do_this", nil)
	} else {
		switch {
		case isAhead && rateDriven:
			doThis = e.tr.T("insights.pace.do_this_ahead_rate", nil)
		case isAhead:
			doThis = e.tr.T("insights.pace.do_this_ahead_volume", nil)
		case !rateDriven:
			doThis = e.tr.T("insights.pace.do_this_behind_volume", map[string]any{
				"delta": fm.Count(math.Abs(rnDelta)),
			})
		default:
			doThis = e.tr.T("insights.pace.do_this_behind_rate", nil)
		}
	}

	impactKey := "insights.pace.impact_down"
	if revPARPct >= 0 {
		impactKey = "insights.pace.impact_up"
	}

	return &Card{
		Type:     TypePaceSTLY,
		Severity: severity,
		Title: e.tr.T(titleKey, map[string]any{
			"delta": fm.Count(math.Abs(rnDelta)),
		}),
		What: e.tr.T("insights.pace.what", map[string]any{
			"rn":      fm.Count(totalRN),
			"stlyRn":  fm.Count(stlyRN),
			"rnPct":   fm.SignedCount(rnPct) + "%",
			"adr":     fm.Money(adrCurrent),
			"stlyAdr": fm.Money(adrSTLY),
			"adrPct":  fm.SignedCount(adrPct) + "%",
		}),
		SoWhat: e.tr.T("insights.pace.so_what", map[string]any{
			"direction": e.tr.T(directionKey, nil),
			"driver":    e.tr.T(driverKey, nil),
		}),
		DoThis: doThis,
		Impact: e.tr.T(impactKey, map[string]any{
			"pct": fm.Pct(math.Abs(revPARPct) / 100),
		}),
		Confidence: conf,
	}
}
