package insights

// CalculateConfidence grades the three signal dimensions independently.
// Every input path yields a defined level; unknown forecast provenance
// degrades to LOW rather than failing.
func CalculateConfidence(pickupHistoryCount int, source ForecastSource, segmentMappedPct float64) Dimensions {
	var pickup Level
	switch {
	case pickupHistoryCount >= 5:
		pickup = LevelHigh
	case pickupHistoryCount >= 2:
		pickup = LevelMedium
	default:
		pickup = LevelLow
	}

	var forecast Level
	switch source {
	case ForecastStatistical, ForecastComputed:
		forecast = LevelHigh
	case ForecastHeuristic, ForecastSingle, ForecastFallback:
		forecast = LevelMedium
	default:
		forecast = LevelLow
	}

	var segment Level
	switch {
	case segmentMappedPct >= 0.80:
		segment = LevelHigh
	case segmentMappedPct >= 0.50:
		segment = LevelMedium
	default:
		segment = LevelLow
	}

	return Dimensions{Pickup: pickup, Forecast: forecast, Segment: segment}
}

// CardConfidence resolves the confidence displayed on a card of the given
// type: the ordinal minimum of the dimensions that gate it. The UI rewords
// LOW cards and suppresses their numeric impact estimates, so this mapping
// must stay exact.
func CardConfidence(t InsightType, dims Dimensions) Level {
	switch t {
	case TypeTop3, TypeCompressionDanger, TypeCompressionHot,
		TypeRevenueOpportunity, TypePaceSTLY:
		return MinLevel(dims.Pickup, dims.Forecast)
	case TypeSegmentMix:
		return dims.Segment
	case TypeCancelTier1, TypeCancelTier2:
		return MinLevel(dims.Pickup, dims.Segment)
	case TypePickupAcceleration:
		return dims.Pickup
	default:
		return MinLevel(dims.Pickup, dims.Forecast)
	}
}

// confidenceMultiplier is kz in the Top-3 scoring formula.
func confidenceMultiplier(l Level) float64 {
	switch l {
	case LevelHigh:
		return 1.0
	case LevelMedium:
		return 0.7
	default:
		return 0.4
	}
}
