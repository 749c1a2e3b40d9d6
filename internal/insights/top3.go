package insights

import (
	"math"
	"sort"
)

// dangerOccBonus is the occupancy floor below which a day earns the danger
// regime bonus during scoring.
const dangerOccBonus = 0.45

// regimeBonus is added per regime hit; hot and danger are independent and
// can both apply.
const regimeBonus = 0.05

// rankTop3 scores the compression cards and returns the best three,
// re-tagged as top3 and carrying their scores.
//
// Per card: occupancy, acceleration ratio, and uplift are normalized onto
// [0,1], combined by the configured weight triple, then scaled by the
// confidence multiplier. The uplift term is zeroed for LOW-confidence cards
// so an unreliable estimate can never dominate the ranking.
func (e *Engine) rankTop3(compression []Card, days7 []DayData, capacity int, dims Dimensions) []Card {
	byDate := make(map[string]DayData, len(days7))
	for _, d := range days7 {
		byDate[d.StayDate.Format(stayDateLayout)] = d
	}

	sc := e.cfg.Scoring
	scored := make([]Card, 0, len(compression))
	for _, card := range compression {
		if card.Type != TypeCompressionDanger && card.Type != TypeCompressionHot {
			continue
		}

		card.Score = fptr(0)
		day, ok := byDate[firstStayDate(card)]
		if !ok {
			scored = append(scored, card)
			continue
		}

		occ := float64(day.RoomsOTB) / float64(capacity)
		accel := 1.0
		if day.PickupNetT3 != nil && day.PickupNetT7 != nil {
			accel = *day.PickupNetT3 / math.Max(*day.PickupNetT7, e.cfg.Eps)
		}
		uplift := fval(day.UpliftPct, 0)
		kz := confidenceMultiplier(card.Confidence)

		cz := clamp01((occ - sc.CLow) / (sc.CHigh - sc.CLow))
		az := clamp01((accel - 1.0) / (e.cfg.AccelCap - 1.0))
		uz := 0.0
		if card.Confidence != LevelLow {
			uz = clamp01((uplift - sc.ULow) / (sc.UHigh - sc.ULow))
		}

		w := sc.Weights
		score := (w.Occupancy*cz + w.Acceleration*az + w.Uplift*uz) * kz

		if occ > e.cfg.HotOcc || remaining(day, capacity) < float64(capacity)*0.5 {
			score += regimeBonus
		}
		if occ < dangerOccBonus || (day.PaceVsLY != nil && *day.PaceVsLY < e.cfg.PaceGapThreshold) {
			score += regimeBonus
		}

		card.Score = fptr(score)
		scored = append(scored, card)
	}

	// Scores within the tie band are not meaningfully different. For
	// LOW-confidence ties the earlier stay date wins (urgency over an
	// estimate nobody trusts); otherwise score order stands, then date.
	sort.SliceStable(scored, func(i, j int) bool {
		si, sj := *scored[i].Score, *scored[j].Score
		diff := si - sj
		if math.Abs(diff) >= sc.TieBand {
			return diff > 0
		}
		if scored[i].Confidence == LevelLow {
			return firstStayDate(scored[i]) < firstStayDate(scored[j])
		}
		if diff != 0 {
			return diff > 0
		}
		return firstStayDate(scored[i]) < firstStayDate(scored[j])
	})

	if len(scored) > 3 {
		scored = scored[:3]
	}
	top := make([]Card, len(scored))
	for i, card := range scored {
		card.Type = TypeTop3
		top[i] = card
	}
	return top
}

func firstStayDate(c Card) string {
	if len(c.StayDates) == 0 {
		return ""
	}
	return c.StayDates[0]
}

func fptr(v float64) *float64 {
	return &v
}
