package insights

import (
	"math"
	"time"
)

// accelNormalLow/High bound the dead band where short-term pickup is in
// line with the weekly trend and no card is worth a manager's time.
const (
	accelNormalLow  = 0.5
	accelNormalHigh = 1.5
)

// generateAcceleration compares 3-day against 7-day net pickup over the
// short horizon. Requires at least 3 days carrying both windows, otherwise
// nil; ratios inside [0.5, 1.5] are suppressed as normal. A pricing hint is
// attached when a recent price move could explain the shift.
func (e *Engine) generateAcceleration(days7 []DayData, hints []PricingHintData, asOf time.Time, fm Formatter, dims Dimensions) *Card {
	conf := CardConfidence(TypePickupAcceleration, dims)

	withPickup := []DayData{}
	for _, d := range days7 {
		if d.PickupNetT3 != nil && d.PickupNetT7 != nil {
			withPickup = append(withPickup, d)
		}
	}
	if len(withPickup) < 3 {
		return nil
	}

	avgT3 := 0.0
	avgT7 := 0.0
	for _, d := range withPickup {
		avgT3 += fval(d.PickupNetT3, 0)
		avgT7 += fval(d.PickupNetT7, 0)
	}
	avgT3 /= float64(len(withPickup))
	avgT7 /= float64(len(withPickup))

	accel := avgT3 / math.Max(avgT7, e.cfg.Eps)
	if accel >= accelNormalLow && accel <= accelNormalHigh {
		return nil
	}
	accelerating := accel > accelNormalHigh

	// Any >=5% price move decided within the last 3 days means the shift
	// may be price-induced rather than organic demand.
	priceMoved := false
	threeDaysAgo := asOf.AddDate(0, 0, -3)
	for _, h := range hints {
		delta := math.Abs(h.LatestFinal-h.PrevFinal) / math.Max(h.PrevFinal, 1)
		if delta >= 0.05 && !h.LatestDecidedAt.Before(threeDaysAgo) {
			priceMoved = true
			break
		}
	}

	accelPct := math.Round((accel - 1) * 100)

	avgADR := 0.0
	for _, d := range days7 {
		avgADR += d.ADR()
	}
	avgADR /= math.Max(float64(len(days7)), 1)
	impactEst := math.Abs(avgT3-avgT7) * 7 * avgADR

	dir := "down"
	severity := SeverityWarning
	if accelerating {
		dir = "up"
		severity = SeverityHot
	}

	var impact string
	if conf == LevelLow {
		impact = e.tr.T("insights.low_confidence.impact", nil)
	} else {
		impact = e.tr.T("insights.accel.impact_"+dir, map[string]any{
			"amount": fm.Money(impactEst),
		})
	}

	pricingHint := ""
	if priceMoved {
		pricingHint = e.tr.T("insights.accel.pricing_hint", nil)
	}

	return &Card{
		Type:     TypePickupAcceleration,
		Severity: severity,
		Title:    e.tr.T("insights.accel.title_"+dir, nil),
		What: e.tr.T("insights.accel.what", map[string]any{
			"t3":  fm.Signed1(avgT3),
			"t7":  fm.Signed1(avgT7),
			"pct": fm.SignedCount(accelPct) + "%",
		}),
		SoWhat:      e.tr.T("insights.accel.so_what_"+dir, nil),
		DoThis:      e.lowOrT(conf, "insights.accel.do_this_"+dir, nil),
		Impact:      impact,
		Confidence:  conf,
		PricingHint: pricingHint,
	}
}
