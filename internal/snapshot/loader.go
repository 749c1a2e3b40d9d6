// Package snapshot assembles the engine's input from a pre-fetched row
// dump. It stands where the upstream data-fetch collaborator hands over:
// all I/O and parallel table lookups happen before this point, the engine
// runs once against the assembled snapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revpulse/revpulse/internal/insights"
)

// File is the on-disk snapshot format: raw rows per source table.
type File struct {
	HotelID       string    `json:"hotel_id"`
	HotelCapacity int       `json:"hotel_capacity"`
	Currency      string    `json:"currency"`
	Locale        string    `json:"locale"`
	AsOf          time.Time `json:"as_of"`

	OTB              []OTBRow             `json:"otb"`
	Features         []FeatureRow         `json:"features"`
	Forecasts        []ForecastRow        `json:"forecasts"`
	PriceRecs        []PriceRecRow        `json:"price_recommendations"`
	PricingDecisions []PricingDecisionRow `json:"pricing_decisions"`
	Reservations     []ReservationRow     `json:"reservations"`
}

// OTBRow is one on-the-books reading per stay date.
type OTBRow struct {
	StayDate   time.Time `json:"stay_date"`
	RoomsOTB   int       `json:"rooms_otb"`
	RevenueOTB float64   `json:"revenue_otb"`
}

// FeatureRow carries the derived daily features. Pickup values are OTB
// diffs and therefore already net of cancellations.
type FeatureRow struct {
	StayDate        time.Time `json:"stay_date"`
	PickupT3        *float64  `json:"pickup_t3,omitempty"`
	PickupT7        *float64  `json:"pickup_t7,omitempty"`
	PaceVsLY        *float64  `json:"pace_vs_ly,omitempty"`
	RemainingSupply *float64  `json:"remaining_supply,omitempty"`
	STLYRevenueOTB  *float64  `json:"stly_revenue_otb,omitempty"`
}

// ForecastRow is one demand forecast per stay date.
type ForecastRow struct {
	StayDate        time.Time `json:"stay_date"`
	RemainingDemand *float64  `json:"remaining_demand,omitempty"`
	ModelVersion    string    `json:"model_version,omitempty"`
}

// PriceRecRow is the latest price recommendation per stay date.
type PriceRecRow struct {
	StayDate         time.Time `json:"stay_date"`
	CurrentPrice     *float64  `json:"current_price,omitempty"`
	RecommendedPrice *float64  `json:"recommended_price,omitempty"`
	ExpectedRevenue  *float64  `json:"expected_revenue,omitempty"`
	UpliftPct        *float64  `json:"uplift_pct,omitempty"`
}

// PricingDecisionRow is one applied pricing decision.
type PricingDecisionRow struct {
	StayDate   time.Time `json:"stay_date"`
	FinalPrice *float64  `json:"final_price,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}

// ReservationRow is one raw reservation in the 30-day window. Rooms
// defaults to 1 when absent.
type ReservationRow struct {
	Segment    string     `json:"segment,omitempty"`
	Rooms      *int       `json:"rooms,omitempty"`
	Status     string     `json:"status"`
	BookTime   *time.Time `json:"book_time,omitempty"`
	CancelTime *time.Time `json:"cancel_time,omitempty"`
}

func (r ReservationRow) roomCount() int {
	if r.Rooms == nil {
		return 1
	}
	return *r.Rooms
}

// Load reads a snapshot file and assembles the engine input.
func Load(path string, logger zerolog.Logger) (insights.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return insights.Input{}, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return insights.Input{}, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	if file.HotelCapacity <= 0 {
		return insights.Input{}, fmt.Errorf("snapshot %s: hotel_capacity must be positive, got %d", path, file.HotelCapacity)
	}

	in := Assemble(file)

	logger.Info().
		Str("hotel_id", file.HotelID).
		Int("days", len(in.Days)).
		Int("segments", len(in.Segments)).
		Int("pricing_hints", len(in.PricingHints)).
		Bool("cancel_data", in.Cancel != nil).
		Msg("Snapshot assembled")

	return in, nil
}

// Assemble joins the raw rows into the engine input: per-day records keyed
// by stay date, hotel-level cancellation aggregates, segment shares,
// pricing-decision pairs, and the three confidence dimensions.
func Assemble(file File) insights.Input {
	featureByDate := map[string]FeatureRow{}
	for _, f := range file.Features {
		featureByDate[dayKey(f.StayDate)] = f
	}
	forecastByDate := map[string]ForecastRow{}
	for _, f := range file.Forecasts {
		forecastByDate[dayKey(f.StayDate)] = f
	}
	recByDate := map[string]PriceRecRow{}
	for _, r := range file.PriceRecs {
		recByDate[dayKey(r.StayDate)] = r
	}

	days := make([]insights.DayData, 0, len(file.OTB))
	for _, otb := range file.OTB {
		key := dayKey(otb.StayDate)
		feat := featureByDate[key]
		fcst := forecastByDate[key]
		rec := recByDate[key]

		days = append(days, insights.DayData{
			StayDate:         otb.StayDate,
			RoomsOTB:         otb.RoomsOTB,
			RevenueOTB:       otb.RevenueOTB,
			PickupNetT3:      feat.PickupT3,
			PickupNetT7:      feat.PickupT7,
			PaceVsLY:         feat.PaceVsLY,
			RemainingSupply:  feat.RemainingSupply,
			STLYRevenueOTB:   feat.STLYRevenueOTB,
			ForecastDemand:   fcst.RemainingDemand,
			RecommendedPrice: rec.RecommendedPrice,
			ExpectedRevenue:  rec.ExpectedRevenue,
			UpliftPct:        rec.UpliftPct,
			CurrentPrice:     rec.CurrentPrice,
		})
	}

	return insights.Input{
		HotelCapacity: file.HotelCapacity,
		Currency:      file.Currency,
		Locale:        file.Locale,
		AsOf:          file.AsOf,
		Days:          days,
		Cancel:        assembleCancel(file.Reservations, file.AsOf),
		Segments:      assembleSegments(file.Reservations),
		PricingHints:  assemblePricingHints(file.PricingDecisions),
		Confidence:    deriveConfidence(file),
	}
}

// assemblePricingHints pairs the two most recent decisions per stay date.
func assemblePricingHints(decisions []PricingDecisionRow) []insights.PricingHintData {
	byDate := map[string][]PricingDecisionRow{}
	keys := []string{}
	for _, d := range decisions {
		key := dayKey(d.StayDate)
		if _, seen := byDate[key]; !seen {
			keys = append(keys, key)
		}
		byDate[key] = append(byDate[key], d)
	}
	sort.Strings(keys)

	hints := []insights.PricingHintData{}
	for _, key := range keys {
		ds := byDate[key]
		sort.SliceStable(ds, func(i, j int) bool {
			return ds[i].DecidedAt.After(ds[j].DecidedAt)
		})
		if len(ds) < 2 || ds[0].FinalPrice == nil || ds[1].FinalPrice == nil {
			continue
		}
		hints = append(hints, insights.PricingHintData{
			StayDate:        ds[0].StayDate,
			LatestFinal:     *ds[0].FinalPrice,
			PrevFinal:       *ds[1].FinalPrice,
			LatestDecidedAt: ds[0].DecidedAt,
		})
	}
	return hints
}

// assembleCancel derives the whole-hotel cancellation summary. Gross 7-day
// pickup and 7-day cancels are independent raw counts; downstream consumers
// subtract them exactly once for net pickup.
func assembleCancel(reservations []ReservationRow, asOf time.Time) *insights.CancelData {
	if len(reservations) == 0 {
		return nil
	}
	sevenDaysAgo := asOf.AddDate(0, 0, -7)

	cancelled := 0
	gross7d := 0
	cancel7d := 0
	cancelBySegment := map[string]int{}
	for _, r := range reservations {
		isCancelled := r.Status == "cancelled"
		if isCancelled {
			cancelled++
			seg := r.Segment
			if seg == "" {
				seg = "Unknown"
			}
			cancelBySegment[seg] += r.roomCount()
		}
		if !isCancelled && r.BookTime != nil && !r.BookTime.Before(sevenDaysAgo) {
			gross7d += r.roomCount()
		}
		if r.CancelTime != nil && !r.CancelTime.Before(sevenDaysAgo) {
			cancel7d += r.roomCount()
		}
	}

	topSegment := ""
	topCount := 0
	segments := make([]string, 0, len(cancelBySegment))
	for seg := range cancelBySegment {
		segments = append(segments, seg)
	}
	sort.Strings(segments)
	for _, seg := range segments {
		if cancelBySegment[seg] > topCount {
			topCount = cancelBySegment[seg]
			topSegment = seg
		}
	}

	return &insights.CancelData{
		CancelRate30d:    float64(cancelled) / float64(len(reservations)),
		PickupGross7d:    gross7d,
		Cancel7d:         cancel7d,
		TopCancelSegment: topSegment,
	}
}

// assembleSegments groups active reservations into segment shares.
func assembleSegments(reservations []ReservationRow) []insights.SegmentData {
	rooms := map[string]int{}
	total := 0
	for _, r := range reservations {
		if r.Status == "cancelled" {
			continue
		}
		seg := r.Segment
		if seg == "" {
			seg = "Unknown"
		}
		rooms[seg] += r.roomCount()
		total += r.roomCount()
	}

	names := make([]string, 0, len(rooms))
	for name := range rooms {
		names = append(names, name)
	}
	sort.Strings(names)

	segments := make([]insights.SegmentData, 0, len(names))
	for _, name := range names {
		pct := 0.0
		if total > 0 {
			pct = float64(rooms[name]) / float64(total)
		}
		segments = append(segments, insights.SegmentData{
			SegmentName: name,
			RoomCount:   rooms[name],
			Pct:         pct,
		})
	}
	return segments
}

// deriveConfidence maps the raw snapshot onto the three confidence inputs.
func deriveConfidence(file File) insights.Dimensions {
	pickupHistory := 0
	for _, f := range file.Features {
		if f.PickupT7 != nil {
			pickupHistory++
		}
	}

	source := insights.ForecastNone
	if len(file.Forecasts) > 0 {
		mv := file.Forecasts[0].ModelVersion
		switch {
		case strings.Contains(mv, "fallback") || strings.Contains(mv, "no_supply"):
			source = insights.ForecastFallback
		case strings.Contains(mv, "pickup_single"):
			source = insights.ForecastSingle
		default:
			source = insights.ForecastComputed
		}
	}

	mapped := 0
	for _, r := range file.Reservations {
		if r.Segment != "" {
			mapped++
		}
	}
	mappedPct := 0.0
	if len(file.Reservations) > 0 {
		mappedPct = float64(mapped) / float64(len(file.Reservations))
	}

	return insights.CalculateConfidence(pickupHistory, source, mappedPct)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
