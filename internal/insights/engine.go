package insights

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/revpulse/revpulse/internal/config"
)

// Engine turns a materialized booking snapshot into ranked insight cards.
// It holds no state across calls; the run is synchronous and side-effect
// free apart from logging.
type Engine struct {
	cfg config.InsightsConfig
	tr  Translator
	log zerolog.Logger
}

// NewEngine wires an engine with a validated config and the caller's
// translator.
func NewEngine(cfg config.InsightsConfig, tr Translator, logger zerolog.Logger) *Engine {
	return &Engine{cfg: cfg, tr: tr, log: logger}
}

// Generate runs every generator in a fixed order against the snapshot and
// assembles the result. Output is deterministic for identical input and
// AsOf. Zero days of data yields the valid empty result, not an error.
func (e *Engine) Generate(in Input) Result {
	log := e.log.With().Str("run_id", uuid.NewString()).Logger()

	if len(in.Days) == 0 {
		log.Info().Msg("Empty snapshot - returning empty insights result")
		return Result{Top3: []Card{}, Compression: []Card{}, OtherInsights: []Card{}}
	}

	fm := NewFormatter(in.Locale, in.Currency)
	days7 := horizon(in.Days, in.AsOf, 7)
	days30 := horizon(in.Days, in.AsOf, 30)

	compression := e.generateCompression(days7, in.HotelCapacity, fm, in.Confidence)

	other := []Card{}
	if c := e.generateRevenue(days30, in.HotelCapacity, fm, in.Confidence); c != nil {
		other = append(other, *c)
	}
	if c := e.generatePace(days30, in.HotelCapacity, fm, in.Confidence); c != nil {
		other = append(other, *c)
	}
	if c := e.generateAcceleration(days7, in.PricingHints, in.AsOf, fm, in.Confidence); c != nil {
		other = append(other, *c)
	}
	other = append(other, e.generateCancellation(in.Cancel, fm, in.Confidence)...)
	if c := e.generateSegmentMix(in.Segments, days30, fm, in.Confidence); c != nil {
		other = append(other, *c)
	}

	top3 := e.rankTop3(compression, days7, in.HotelCapacity, in.Confidence)

	log.Info().
		Int("days_7d", len(days7)).
		Int("days_30d", len(days30)).
		Int("compression", len(compression)).
		Int("top3", len(top3)).
		Int("other", len(other)).
		Str("pickup_conf", string(in.Confidence.Pickup)).
		Str("forecast_conf", string(in.Confidence.Forecast)).
		Str("segment_conf", string(in.Confidence.Segment)).
		Msg("Insights generated")

	return Result{Top3: top3, Compression: compression, OtherInsights: other}
}

// horizon keeps days within [0, maxDays] days after the reference date.
func horizon(days []DayData, asOf time.Time, maxDays float64) []DayData {
	out := []DayData{}
	for _, d := range days {
		diff := d.StayDate.Sub(asOf).Hours() / 24
		if diff >= 0 && diff <= maxDays {
			out = append(out, d)
		}
	}
	return out
}
