package insights

import "math"

// cancelRateWarn is the 30-day cancellation rate above which tier-1
// escalates to a warning.
const cancelRateWarn = 0.15

// generateCancellation emits the two-tier cancellation view. Tier 1 always
// reports the gross/cancel/net picture when cancel data exists. Tier 2
// recommends deliberate overbooking and therefore stays behind both HIGH
// resolved confidence and the explicit opt-in flag; it is a policy decision,
// not a data fact.
func (e *Engine) generateCancellation(cancel *CancelData, fm Formatter, dims Dimensions) []Card {
	if cancel == nil {
		return nil
	}
	cards := []Card{}

	conf1 := CardConfidence(TypeCancelTier1, dims)
	netPickup := cancel.PickupGross7d - cancel.Cancel7d
	ratePct := math.Round(cancel.CancelRate30d*1000) / 10
	elevated := cancel.CancelRate30d > cancelRateWarn

	severity := SeverityInfo
	if elevated {
		severity = SeverityWarning
	}

	topSegmentClause := ""
	if cancel.TopCancelSegment != "" {
		topSegmentClause = e.tr.T("insights.cancel.tier1.what_top_segment", map[string]any{
			"segment": cancel.TopCancelSegment,
		})
	}

	soWhatKey := "insights.cancel.tier1.so_what_normal"
	doThisKey := "insights.cancel.tier1.do_this_normal"
	if elevated {
		soWhatKey = "insights.cancel.tier1.so_what_high"
		doThisKey = "insights.cancel.tier1.do_this_high"
	}

	doThis := e.tr.T(doThisKey, nil)
	if conf1 == LevelLow {
		doThis = e.tr.T("insights.cancel.tier1.do_this_low", nil)
	}

	cards = append(cards, Card{
		Type:     TypeCancelTier1,
		Severity: severity,
		Title: e.tr.T("insights.cancel.tier1.title", map[string]any{
			"pct": fm.Pct1(ratePct),
		}),
		What: e.tr.T("insights.cancel.tier1.what", map[string]any{
			"gross":      fm.Count(float64(cancel.PickupGross7d)),
			"cancelled":  fm.Count(float64(cancel.Cancel7d)),
			"net":        fm.SignedCount(float64(netPickup)),
			"topSegment": topSegmentClause,
		}),
		SoWhat: e.tr.T(soWhatKey, nil),
		DoThis: doThis,
		Impact: e.tr.T("insights.cancel.tier1.impact", map[string]any{
			"cancelled": fm.Count(float64(cancel.Cancel7d)),
		}),
		Confidence: conf1,
	})

	conf2 := CardConfidence(TypeCancelTier2, dims)
	if conf2 == LevelHigh && e.cfg.Oversell.Enabled {
		ov := e.cfg.Oversell
		recoverRN := math.Round(float64(cancel.Cancel7d) * ov.RecoveryWeeks * ov.RecoveryFactor)
		recoverAmount := recoverRN * e.cfg.WalkCostPerGuest * ov.Exposure

		cards = append(cards, Card{
			Type:     TypeCancelTier2,
			Severity: SeverityInfo,
			Title:    e.tr.T("insights.cancel.tier2.title", nil),
			What: e.tr.T("insights.cancel.tier2.what", map[string]any{
				"pct": fm.Pct1(ratePct),
			}),
			SoWhat: e.tr.T("insights.cancel.tier2.so_what", nil),
			DoThis: e.tr.T("insights.cancel.tier2.do_this", nil),
			Impact: e.tr.T("insights.cancel.tier2.impact", map[string]any{
				"rooms":    fm.Count(recoverRN),
				"amount":   fm.Money(recoverAmount),
				"walkCost": fm.Money(e.cfg.WalkCostPerGuest),
			}),
			// Displayed a notch below the gating level: the recovery figure
			// is a heuristic even when the inputs are solid.
			Confidence: LevelMedium,
		})
	}

	return cards
}
