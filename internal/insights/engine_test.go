package insights

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revpulse/revpulse/internal/config"
)

// stubTranslator renders "key|k=v,..." so tests can assert both the key
// selected and the parameters passed without a real catalog.
type stubTranslator struct{}

func (stubTranslator) T(key string, params map[string]any) string {
	if len(params) == 0 {
		return key
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, params[name]))
	}
	return key + "|" + strings.Join(parts, ",")
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(config.DefaultInsights(), stubTranslator{}, zerolog.Nop())
}

func fp(v float64) *float64 { return &v }

var testAsOf = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func stay(offsetDays int) time.Time {
	return testAsOf.AddDate(0, 0, offsetDays)
}

func TestGenerate_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	result := e.Generate(Input{HotelCapacity: 100, AsOf: testAsOf})

	assert.Equal(t, Result{Top3: []Card{}, Compression: []Card{}, OtherInsights: []Card{}}, result)
}

func TestGenerate_SingleDangerDay(t *testing.T) {
	e := newTestEngine(t)

	in := Input{
		HotelCapacity: 100,
		AsOf:          testAsOf,
		Days: []DayData{
			{StayDate: stay(2), RoomsOTB: 30, RevenueOTB: 3_000_000},
		},
	}

	result := e.Generate(in)

	require.Len(t, result.Compression, 1)
	card := result.Compression[0]
	assert.Equal(t, TypeCompressionDanger, card.Type)
	assert.Equal(t, SeverityDanger, card.Severity)
	assert.Equal(t, []string{stay(2).Format("2006-01-02")}, card.StayDates)
	assert.Contains(t, card.Reasons, "OCC 30% < 50%")

	require.Len(t, result.Top3, 1)
	assert.Equal(t, TypeTop3, result.Top3[0].Type)
	assert.Equal(t, card.StayDates, result.Top3[0].StayDates)
	require.NotNil(t, result.Top3[0].Score)
}

func TestGenerate_Idempotent(t *testing.T) {
	e := newTestEngine(t)

	in := Input{
		HotelCapacity: 100,
		Currency:      "VND",
		Locale:        "en",
		AsOf:          testAsOf,
		Days: []DayData{
			{StayDate: stay(1), RoomsOTB: 30, RevenueOTB: 3_000_000, PaceVsLY: fp(-20), PickupNetT3: fp(2), PickupNetT7: fp(4)},
			{StayDate: stay(2), RoomsOTB: 90, RevenueOTB: 13_500_000, PickupNetT3: fp(8), PickupNetT7: fp(4), UpliftPct: fp(0.15)},
			{StayDate: stay(10), RoomsOTB: 40, RevenueOTB: 4_800_000, PaceVsLY: fp(-3), STLYRevenueOTB: fp(4_000_000)},
		},
		Cancel:   &CancelData{CancelRate30d: 0.2, PickupGross7d: 25, Cancel7d: 6, TopCancelSegment: "Agoda"},
		Segments: []SegmentData{{SegmentName: "Booking.com", RoomCount: 60, Pct: 0.6}, {SegmentName: "Direct", RoomCount: 40, Pct: 0.4}},
		Confidence: Dimensions{
			Pickup: LevelHigh, Forecast: LevelMedium, Segment: LevelHigh,
		},
	}

	first, err := json.Marshal(e.Generate(in))
	require.NoError(t, err)
	second, err := json.Marshal(e.Generate(in))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerate_Top3Bound(t *testing.T) {
	e := newTestEngine(t)

	days := []DayData{}
	for i := 1; i <= 6; i++ {
		days = append(days, DayData{StayDate: stay(i), RoomsOTB: 20 + i, RevenueOTB: float64(2_000_000 + i)})
	}

	result := e.Generate(Input{HotelCapacity: 100, AsOf: testAsOf, Days: days})

	assert.Len(t, result.Compression, 6)
	assert.LessOrEqual(t, len(result.Top3), 3)
	assert.LessOrEqual(t, len(result.Top3), len(result.Compression))
}

func TestHorizon_Partition(t *testing.T) {
	days := []DayData{
		{StayDate: stay(-1)},
		{StayDate: stay(0)},
		{StayDate: stay(7)},
		{StayDate: stay(8)},
		{StayDate: stay(30)},
		{StayDate: stay(31)},
	}

	assert.Len(t, horizon(days, testAsOf, 7), 2)
	assert.Len(t, horizon(days, testAsOf, 30), 4)
}

func TestGenerate_FixedOtherOrder(t *testing.T) {
	e := newTestEngine(t)

	days := []DayData{}
	for i := 1; i <= 6; i++ {
		days = append(days, DayData{
			StayDate:       stay(i),
			RoomsOTB:       60,
			RevenueOTB:     6_000_000,
			PaceVsLY:       fp(-3),
			STLYRevenueOTB: fp(5_000_000),
			PickupNetT3:    fp(10),
			PickupNetT7:    fp(4),
		})
	}

	in := Input{
		HotelCapacity: 100,
		AsOf:          testAsOf,
		Days:          days,
		Cancel:        &CancelData{CancelRate30d: 0.1, PickupGross7d: 12, Cancel7d: 3},
		Segments:      []SegmentData{{SegmentName: "Agoda OTA", RoomCount: 70, Pct: 0.7}, {SegmentName: "Direct", RoomCount: 30, Pct: 0.3}},
		Confidence:    Dimensions{Pickup: LevelHigh, Forecast: LevelHigh, Segment: LevelHigh},
	}

	result := e.Generate(in)

	types := make([]InsightType, 0, len(result.OtherInsights))
	for _, c := range result.OtherInsights {
		types = append(types, c.Type)
	}
	assert.Equal(t, []InsightType{
		TypeRevenueOpportunity,
		TypePaceSTLY,
		TypePickupAcceleration,
		TypeCancelTier1,
		TypeSegmentMix,
	}, types)
}
