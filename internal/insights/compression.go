package insights

import (
	"fmt"
	"math"
)

// stayDateLayout keys cards back to their day and sorts lexicographically
// in date order.
const stayDateLayout = "2006-01-02"

// generateCompression classifies each day in the 7-day horizon as danger
// (selling too slow) or hot (selling out), emitting one card per flagged
// day. Days in neither regime produce nothing.
func (e *Engine) generateCompression(days7 []DayData, capacity int, fm Formatter, dims Dimensions) []Card {
	cards := []Card{}

	for _, day := range days7 {
		occ := float64(day.RoomsOTB) / float64(capacity)
		rem := remaining(day, capacity)
		paceGap := day.PaceVsLY
		dateStr := fm.Date(day.StayDate)
		adr := day.ADR()

		paceBehind := paceGap != nil && *paceGap < e.cfg.PaceGapThreshold

		switch {
		case occ < e.cfg.FloorOcc || paceBehind:
			conf := CardConfidence(TypeCompressionDanger, dims)
			rnGap := math.Round(float64(capacity)*e.cfg.FloorOcc - float64(day.RoomsOTB))

			// Assume filling half the gap at an 8% average discount.
			fillTarget := math.Round(rnGap * 0.5)
			impactEst := fillTarget * adr * 0.92

			reasons := []string{}
			if occ < e.cfg.FloorOcc {
				reasons = append(reasons, fmt.Sprintf("OCC %.0f%% < %.0f%%", math.Round(occ*100), math.Round(e.cfg.FloorOcc*100)))
			}
			if paceBehind {
				reasons = append(reasons, fmt.Sprintf("pace ▼%.0fpt vs STLY", math.Round(math.Abs(*paceGap))))
			}
			if day.PickupNetT7 != nil && *day.PickupNetT7 < 2 {
				reasons = append(reasons, "weak T7 pickup")
			}

			paceClause := ""
			if paceGap != nil {
				paceClause = e.tr.T("insights.compression.danger.what_pace", map[string]any{
					"gapPts": fm.Count(math.Abs(math.Round(*paceGap))),
				})
			}

			cards = append(cards, Card{
				Type:     TypeCompressionDanger,
				Severity: SeverityDanger,
				Title:    e.tr.T("insights.compression.danger.title", map[string]any{"date": dateStr}),
				What: e.tr.T("insights.compression.danger.what", map[string]any{
					"occPct": fm.Pct(occ),
					"pace":   paceClause,
					"gap":    fm.Count(math.Max(0, rnGap)),
				}),
				SoWhat: e.tr.T("insights.compression.danger.so_what", nil),
				DoThis: e.lowOrT(conf, "insights.compression.danger.do_this", nil),
				Impact: e.lowImpactOrT(conf, "insights.compression.danger.impact", map[string]any{
					"amount": fm.Money(impactEst),
				}),
				Confidence: conf,
				StayDates:  []string{day.StayDate.Format(stayDateLayout)},
				Reasons:    reasons,
			})

		case occ > e.cfg.HotOcc || rem < float64(capacity)*0.5:
			conf := CardConfidence(TypeCompressionHot, dims)
			uplift := fval(day.UpliftPct, 0.10)
			impactEst := rem * adr * uplift

			reasons := []string{
				fmt.Sprintf("OCC %.0f%%", math.Round(occ*100)),
				fmt.Sprintf("%.0f RN left", rem),
			}
			if day.PickupNetT7 != nil {
				reasons = append(reasons, fmt.Sprintf("pickup %+.0f/day", math.Round(*day.PickupNetT7)))
			}
			if day.PickupNetT3 != nil && day.PickupNetT7 != nil && *day.PickupNetT7 > 0 {
				if *day.PickupNetT3/math.Max(*day.PickupNetT7, e.cfg.Eps) > 1.3 {
					reasons = append(reasons, "pickup accelerating")
				}
			}

			pickupClause := ""
			if day.PickupNetT7 != nil {
				pickupClause = e.tr.T("insights.compression.hot.what_pickup", map[string]any{
					"perDay": fm.Count(math.Round(*day.PickupNetT7)),
				})
			}

			cards = append(cards, Card{
				Type:     TypeCompressionHot,
				Severity: SeverityHot,
				Title:    e.tr.T("insights.compression.hot.title", map[string]any{"date": dateStr}),
				What: e.tr.T("insights.compression.hot.what", map[string]any{
					"occPct":    fm.Pct(occ),
					"remaining": fm.Count(rem),
					"pickup":    pickupClause,
				}),
				SoWhat: e.tr.T("insights.compression.hot.so_what", nil),
				DoThis: e.lowOrT(conf, "insights.compression.hot.do_this", nil),
				Impact: e.lowImpactOrT(conf, "insights.compression.hot.impact", map[string]any{
					"upliftPct": fm.Pct(uplift),
					"amount":    fm.Money(impactEst),
				}),
				Confidence: conf,
				StayDates:  []string{day.StayDate.Format(stayDateLayout)},
				Reasons:    reasons,
			})
		}
	}

	return cards
}

// lowOrT swaps the recommendation for the generic more-data message on
// LOW-confidence cards.
func (e *Engine) lowOrT(conf Level, key string, params map[string]any) string {
	if conf == LevelLow {
		return e.tr.T("insights.low_confidence.do_this", nil)
	}
	return e.tr.T(key, params)
}

// lowImpactOrT replaces numeric impact estimates with a disclaimer on
// LOW-confidence cards so unreliable figures never render as facts.
func (e *Engine) lowImpactOrT(conf Level, key string, params map[string]any) string {
	if conf == LevelLow {
		return e.tr.T("insights.low_confidence.impact", nil)
	}
	return e.tr.T(key, params)
}
