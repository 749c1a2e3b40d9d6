package insights

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// otaPattern matches segment names belonging to OTA channels.
var otaPattern = regexp.MustCompile(`(?i)ota|booking\.com|agoda|expedia|traveloka`)

// otaShareThreshold: the mix card only triggers strictly above this OTA
// share; at or below it the mix is not actionable.
const otaShareThreshold = 0.55

// segmentShiftTarget is the assumed share of OTA volume a hotel can move
// to direct channels.
const segmentShiftTarget = 0.10

// generateSegmentMix flags an OTA-heavy channel mix over the 30-day
// horizon and estimates the annual commission saved by shifting a slice of
// it to direct booking. Nil when there are no segments or the mix is not
// OTA-heavy.
func (e *Engine) generateSegmentMix(segments []SegmentData, days30 []DayData, fm Formatter, dims Dimensions) *Card {
	conf := CardConfidence(TypeSegmentMix, dims)
	if len(segments) == 0 {
		return nil
	}

	totalRooms := 0
	otaRooms := 0
	for _, s := range segments {
		totalRooms += s.RoomCount
		if otaPattern.MatchString(s.SegmentName) {
			otaRooms += s.RoomCount
		}
	}
	if totalRooms == 0 {
		return nil
	}

	otaPct := float64(otaRooms) / float64(totalRooms)
	if otaPct <= otaShareThreshold {
		return nil
	}

	avgADR := 0.0
	for _, d := range days30 {
		avgADR += d.ADR()
	}
	avgADR /= math.Max(float64(len(days30)), 1)

	monthlySaved := float64(otaRooms) * segmentShiftTarget * avgADR * e.cfg.Commission.Mid()
	annualSaved := monthlySaved * 12

	top := make([]SegmentData, len(segments))
	copy(top, segments)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Pct > top[j].Pct })
	if len(top) > 4 {
		top = top[:4]
	}
	parts := make([]string, 0, len(top))
	for _, s := range top {
		parts = append(parts, s.SegmentName+" "+fm.Pct(s.Pct))
	}

	return &Card{
		Type:     TypeSegmentMix,
		Severity: SeverityInfo,
		Title: e.tr.T("insights.segment.title", map[string]any{
			"otaPct": fm.Pct(otaPct),
		}),
		What: e.tr.T("insights.segment.what", map[string]any{
			"breakdown": strings.Join(parts, ", "),
		}),
		SoWhat: e.tr.T("insights.segment.so_what", nil),
		DoThis: e.lowOrT(conf, "insights.segment.do_this", nil),
		Impact: e.lowImpactOrT(conf, "insights.segment.impact", map[string]any{
			"amount": fm.Money(annualSaved),
		}),
		Confidence: conf,
	}
}
