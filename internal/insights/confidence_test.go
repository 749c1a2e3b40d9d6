package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateConfidence_Thresholds(t *testing.T) {
	tests := []struct {
		name         string
		pickupCount  int
		source       ForecastSource
		segmentPct   float64
		wantPickup   Level
		wantForecast Level
		wantSegment  Level
	}{
		{"all high", 5, ForecastStatistical, 0.80, LevelHigh, LevelHigh, LevelHigh},
		{"all medium", 2, ForecastHeuristic, 0.50, LevelMedium, LevelMedium, LevelMedium},
		{"all low", 1, ForecastNone, 0.49, LevelLow, LevelLow, LevelLow},
		{"computed is high", 0, ForecastComputed, 0, LevelLow, LevelHigh, LevelLow},
		{"single is medium", 0, ForecastSingle, 0, LevelLow, LevelMedium, LevelLow},
		{"fallback is medium", 0, ForecastFallback, 0, LevelLow, LevelMedium, LevelLow},
		{"garbage source degrades to low", 10, ForecastSource("???"), 1.0, LevelHigh, LevelLow, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dims := CalculateConfidence(tt.pickupCount, tt.source, tt.segmentPct)
			assert.Equal(t, tt.wantPickup, dims.Pickup, "pickup")
			assert.Equal(t, tt.wantForecast, dims.Forecast, "forecast")
			assert.Equal(t, tt.wantSegment, dims.Segment, "segment")
		})
	}
}

func TestCalculateConfidence_Monotonic(t *testing.T) {
	prevPickup := -1
	for count := 0; count <= 10; count++ {
		dims := CalculateConfidence(count, ForecastNone, 0)
		assert.GreaterOrEqual(t, dims.Pickup.Ordinal(), prevPickup,
			"pickup confidence dropped at count=%d", count)
		prevPickup = dims.Pickup.Ordinal()
	}

	prevSegment := -1
	for pct := 0.0; pct <= 1.0; pct += 0.05 {
		dims := CalculateConfidence(0, ForecastNone, pct)
		assert.GreaterOrEqual(t, dims.Segment.Ordinal(), prevSegment,
			"segment confidence dropped at pct=%.2f", pct)
		prevSegment = dims.Segment.Ordinal()
	}
}

func TestCardConfidence_Composition(t *testing.T) {
	dims := Dimensions{Pickup: LevelHigh, Forecast: LevelLow, Segment: LevelMedium}

	// pickup+forecast gated types collapse to the weaker forecast level.
	for _, typ := range []InsightType{TypeTop3, TypeCompressionDanger, TypeCompressionHot, TypeRevenueOpportunity, TypePaceSTLY} {
		assert.Equal(t, LevelLow, CardConfidence(typ, dims), "%s", typ)
	}

	assert.Equal(t, LevelMedium, CardConfidence(TypeSegmentMix, dims))
	assert.Equal(t, LevelMedium, CardConfidence(TypeCancelTier1, dims))
	assert.Equal(t, LevelMedium, CardConfidence(TypeCancelTier2, dims))
	assert.Equal(t, LevelHigh, CardConfidence(TypePickupAcceleration, dims))
}

func TestCardConfidence_IsOrdinalMinimum(t *testing.T) {
	levels := []Level{LevelLow, LevelMedium, LevelHigh}
	for _, p := range levels {
		for _, f := range levels {
			dims := Dimensions{Pickup: p, Forecast: f, Segment: LevelHigh}
			want := p
			if f.Ordinal() < p.Ordinal() {
				want = f
			}
			assert.Equal(t, want, CardConfidence(TypeCompressionDanger, dims),
				"pickup=%s forecast=%s", p, f)
		}
	}
}

func TestConfidenceMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, confidenceMultiplier(LevelHigh))
	assert.Equal(t, 0.7, confidenceMultiplier(LevelMedium))
	assert.Equal(t, 0.4, confidenceMultiplier(LevelLow))
}
