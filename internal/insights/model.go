package insights

import "time"

// Level is a data-quality confidence grade for one signal dimension.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Ordinal maps a level onto the LOW=0 < MEDIUM=1 < HIGH=2 scale.
func (l Level) Ordinal() int {
	switch l {
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	default:
		return 0
	}
}

func levelFromOrdinal(o int) Level {
	switch o {
	case 2:
		return LevelHigh
	case 1:
		return LevelMedium
	default:
		return LevelLow
	}
}

// MinLevel reduces levels by ordinal minimum: one weak upstream signal
// degrades every card that depends on it.
func MinLevel(levels ...Level) Level {
	min := 2
	for _, l := range levels {
		if o := l.Ordinal(); o < min {
			min = o
		}
	}
	return levelFromOrdinal(min)
}

// Dimensions are the three independent confidence grades computed once per
// request and shared by all generators.
type Dimensions struct {
	Pickup   Level `json:"pickup"`
	Forecast Level `json:"forecast"`
	Segment  Level `json:"segment"`
}

// ForecastSource describes forecast provenance.
type ForecastSource string

const (
	ForecastStatistical ForecastSource = "statistical"
	ForecastComputed    ForecastSource = "computed"
	ForecastHeuristic   ForecastSource = "heuristic"
	ForecastSingle      ForecastSource = "single"
	ForecastFallback    ForecastSource = "fallback"
	ForecastNone        ForecastSource = "none"
)

// InsightType tags each card variant. The set is closed; the confidence
// resolver switches over it exhaustively.
type InsightType string

const (
	TypeTop3               InsightType = "top3"
	TypeCompressionDanger  InsightType = "compression_danger"
	TypeCompressionHot     InsightType = "compression_hot"
	TypeRevenueOpportunity InsightType = "revenue_opportunity"
	TypePaceSTLY           InsightType = "pace_stly"
	TypePickupAcceleration InsightType = "pickup_acceleration"
	TypeCancelTier1        InsightType = "cancel_tier1"
	TypeCancelTier2        InsightType = "cancel_tier2"
	TypeSegmentMix         InsightType = "segment_mix"
)

// Severity drives card presentation.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityHot     Severity = "hot"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// DayData carries one stay date's metrics. Pointer fields model values the
// upstream pipeline could not produce; absence is a state, not an error.
type DayData struct {
	StayDate   time.Time `json:"stay_date"`
	RoomsOTB   int       `json:"rooms_otb"`
	RevenueOTB float64   `json:"revenue_otb"`

	PickupNetT3     *float64 `json:"pickup_net_t3,omitempty"`
	PickupNetT7     *float64 `json:"pickup_net_t7,omitempty"`
	PaceVsLY        *float64 `json:"pace_vs_ly,omitempty"`
	RemainingSupply *float64 `json:"remaining_supply,omitempty"`
	STLYRevenueOTB  *float64 `json:"stly_revenue_otb,omitempty"`

	ForecastDemand *float64 `json:"forecast_demand,omitempty"`

	RecommendedPrice *float64 `json:"recommended_price,omitempty"`
	ExpectedRevenue  *float64 `json:"expected_revenue,omitempty"`
	UpliftPct        *float64 `json:"uplift_pct,omitempty"`
	CurrentPrice     *float64 `json:"current_price,omitempty"`
}

// ADR returns revenue per sold room, 0 when nothing is sold.
func (d DayData) ADR() float64 {
	if d.RoomsOTB > 0 {
		return d.RevenueOTB / float64(d.RoomsOTB)
	}
	return 0
}

// CancelData is the whole-hotel cancellation summary. PickupGross7d and
// Cancel7d are independently derived raw counts; net pickup is their one
// allowed subtraction, never applied twice.
type CancelData struct {
	CancelRate30d    float64 `json:"cancel_rate_30d"`
	PickupGross7d    int     `json:"pickup_gross_7d"`
	Cancel7d         int     `json:"cancel_7d"`
	TopCancelSegment string  `json:"top_cancel_segment,omitempty"`
}

// SegmentData is one segment's share of booked rooms in the lookback window.
type SegmentData struct {
	SegmentName string  `json:"segment_name"`
	RoomCount   int     `json:"room_count"`
	Pct         float64 `json:"pct"`
}

// PricingHintData pairs the two latest pricing decisions for one stay date.
type PricingHintData struct {
	StayDate        time.Time `json:"stay_date"`
	LatestFinal     float64   `json:"latest_final_price"`
	PrevFinal       float64   `json:"prev_final_price"`
	LatestDecidedAt time.Time `json:"latest_decided_at"`
}

// Input is the fully materialized snapshot the engine runs against.
// AsOf anchors the 7/30-day horizons; two calls with identical input and
// AsOf produce identical output.
type Input struct {
	HotelCapacity int               `json:"hotel_capacity"`
	Currency      string            `json:"currency"`
	Locale        string            `json:"locale"`
	AsOf          time.Time         `json:"as_of"`
	Days          []DayData         `json:"days"`
	Cancel        *CancelData       `json:"cancel,omitempty"`
	Segments      []SegmentData     `json:"segments"`
	PricingHints  []PricingHintData `json:"pricing_hints"`
	Confidence    Dimensions        `json:"confidence"`
}

// Card is the output unit: a flat record ready for rendering, no further
// business logic required downstream.
type Card struct {
	Type       InsightType `json:"type"`
	Severity   Severity    `json:"severity"`
	Title      string      `json:"title"`
	What       string      `json:"what"`
	SoWhat     string      `json:"so_what"`
	DoThis     string      `json:"do_this"`
	Impact     string      `json:"impact"`
	Confidence Level       `json:"confidence"`

	StayDates   []string `json:"stay_dates,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Reasons     []string `json:"reasons,omitempty"`
	PricingHint string   `json:"pricing_hint,omitempty"`
}

// Result is the engine's outbound contract.
type Result struct {
	Top3          []Card `json:"top3"`
	Compression   []Card `json:"compression"`
	OtherInsights []Card `json:"other_insights"`
}

// Translator renders localized card text. Implementations must always
// return some string and never panic; a missing key comes back verbatim.
type Translator interface {
	T(key string, params map[string]any) string
}

func fval(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// remaining returns sellable rooms for a day, clamping the transient
// negative remaining_supply artifact to 0.
func remaining(d DayData, capacity int) float64 {
	if d.RemainingSupply != nil {
		if *d.RemainingSupply < 0 {
			return 0
		}
		return *d.RemainingSupply
	}
	r := float64(capacity - d.RoomsOTB)
	if r < 0 {
		return 0
	}
	return r
}
