package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dangerCard(date string, conf Level) Card {
	return Card{
		Type:       TypeCompressionDanger,
		Severity:   SeverityDanger,
		Confidence: conf,
		StayDates:  []string{date},
	}
}

func TestRankTop3_LowConfidenceTieBreakPrefersEarlierDate(t *testing.T) {
	e := newTestEngine(t)

	// Identical metrics, so both scores land inside the tie band.
	days := []DayData{
		{StayDate: stay(5), RoomsOTB: 30, RevenueOTB: 3_000_000},
		{StayDate: stay(2), RoomsOTB: 30, RevenueOTB: 3_000_000},
	}
	cards := []Card{
		dangerCard(stay(5).Format("2006-01-02"), LevelLow),
		dangerCard(stay(2).Format("2006-01-02"), LevelLow),
	}

	top := e.rankTop3(cards, days, 100, Dimensions{})

	require.Len(t, top, 2)
	assert.Equal(t, stay(2).Format("2006-01-02"), top[0].StayDates[0])
	assert.Equal(t, stay(5).Format("2006-01-02"), top[1].StayDates[0])
}

func TestRankTop3_ScoreOrderOutsideTieBand(t *testing.T) {
	e := newTestEngine(t)

	days := []DayData{
		{StayDate: stay(1), RoomsOTB: 35, RevenueOTB: 3_500_000},
		{StayDate: stay(2), RoomsOTB: 92, RevenueOTB: 13_800_000, PickupNetT3: fp(9), PickupNetT7: fp(3), UpliftPct: fp(0.2)},
	}
	cards := []Card{
		dangerCard(stay(1).Format("2006-01-02"), LevelHigh),
		{Type: TypeCompressionHot, Confidence: LevelHigh, StayDates: []string{stay(2).Format("2006-01-02")}},
	}

	top := e.rankTop3(cards, days, 100, Dimensions{})

	require.Len(t, top, 2)
	// The hot, accelerating, high-uplift day outranks the low-occupancy one.
	assert.Equal(t, stay(2).Format("2006-01-02"), top[0].StayDates[0])
	assert.Greater(t, *top[0].Score, *top[1].Score)
}

func TestRankTop3_UpliftZeroedForLowConfidence(t *testing.T) {
	e := newTestEngine(t)

	withUplift := DayData{StayDate: stay(1), RoomsOTB: 30, RevenueOTB: 3_000_000, UpliftPct: fp(0.25)}
	withoutUplift := DayData{StayDate: stay(2), RoomsOTB: 30, RevenueOTB: 3_000_000}

	top := e.rankTop3(
		[]Card{
			dangerCard(stay(1).Format("2006-01-02"), LevelLow),
			dangerCard(stay(2).Format("2006-01-02"), LevelLow),
		},
		[]DayData{withUplift, withoutUplift},
		100,
		Dimensions{},
	)

	require.Len(t, top, 2)
	assert.Equal(t, *top[0].Score, *top[1].Score,
		"a LOW-confidence uplift estimate must not move the score")
}

func TestRankTop3_BonusesAreIndependent(t *testing.T) {
	e := newTestEngine(t)

	// occ 0.40: below the 0.45 danger bonus floor AND remaining < 50% of
	// capacity, so both regime bonuses apply.
	both := DayData{StayDate: stay(1), RoomsOTB: 40, RevenueOTB: 4_000_000, RemainingSupply: fp(30)}
	// occ 0.44: danger regime only (neither hot condition holds).
	one := DayData{StayDate: stay(2), RoomsOTB: 44, RevenueOTB: 4_400_000, PaceVsLY: fp(-20)}

	top := e.rankTop3(
		[]Card{
			dangerCard(stay(1).Format("2006-01-02"), LevelHigh),
			dangerCard(stay(2).Format("2006-01-02"), LevelHigh),
		},
		[]DayData{both, one},
		100,
		Dimensions{},
	)

	require.Len(t, top, 2)

	sc := e.cfg.Scoring
	base := func(occ float64) float64 {
		cz := clamp01((occ - sc.CLow) / (sc.CHigh - sc.CLow))
		return sc.Weights.Occupancy * cz // accel defaults to 1.0 -> Az=0; no uplift
	}

	scores := map[string]float64{}
	for _, c := range top {
		scores[c.StayDates[0]] = *c.Score
	}
	assert.InDelta(t, base(0.40)+0.10, scores[stay(1).Format("2006-01-02")], 1e-9)
	assert.InDelta(t, base(0.44)+0.05, scores[stay(2).Format("2006-01-02")], 1e-9)
}

func TestRankTop3_CapsAtThreeAndRetags(t *testing.T) {
	e := newTestEngine(t)

	days := []DayData{}
	cards := []Card{}
	for i := 1; i <= 5; i++ {
		days = append(days, DayData{StayDate: stay(i), RoomsOTB: 20 + i*2, RevenueOTB: 2_000_000})
		cards = append(cards, dangerCard(stay(i).Format("2006-01-02"), LevelHigh))
	}

	top := e.rankTop3(cards, days, 100, Dimensions{})

	require.Len(t, top, 3)
	for _, c := range top {
		assert.Equal(t, TypeTop3, c.Type)
		assert.Equal(t, SeverityDanger, c.Severity, "severity survives re-tagging")
		assert.NotNil(t, c.Score)
	}
}

func TestRankTop3_UnmatchedDateScoresZero(t *testing.T) {
	e := newTestEngine(t)

	top := e.rankTop3(
		[]Card{dangerCard("2099-01-01", LevelHigh)},
		[]DayData{{StayDate: stay(1), RoomsOTB: 30}},
		100,
		Dimensions{},
	)

	require.Len(t, top, 1)
	assert.Equal(t, 0.0, *top[0].Score)
}
