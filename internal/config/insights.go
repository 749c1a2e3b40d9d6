package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// InsightsConfig holds every tunable threshold and weight the insights
// engine consumes. The engine never validates it; callers load it through
// this package, which fails fast on nonsensical values.
type InsightsConfig struct {
	// Occupancy band for compression classification.
	FloorOcc float64 `yaml:"floor_occ" validate:"gt=0,lt=1"`
	HotOcc   float64 `yaml:"hot_occ" validate:"gt=0,lte=1"`

	// Pace gap (rooms vs STLY) below which a day is in danger.
	PaceGapThreshold float64 `yaml:"pace_gap_threshold" validate:"lt=0"`

	// Acceleration ratio ceiling used for score normalization.
	AccelCap float64 `yaml:"accel_cap"`

	Scoring    ScoringConfig   `yaml:"scoring"`
	Commission CommissionRange `yaml:"commission"`
	Oversell   OversellConfig  `yaml:"oversell"`

	// Cost of relocating one walked guest, in hotel currency units.
	WalkCostPerGuest float64 `yaml:"walk_cost_per_guest" validate:"gte=0"`

	// Epsilon guard for pickup ratio denominators.
	Eps float64 `yaml:"eps" validate:"gt=0"`
}

// ScoringConfig drives Top-3 normalization and weighting.
type ScoringConfig struct {
	CLow  float64 `yaml:"c_low"`
	CHigh float64 `yaml:"c_high"`
	ULow  float64 `yaml:"u_low"`
	UHigh float64 `yaml:"u_high"`

	Weights ScoringWeights `yaml:"weights"`

	// Scores closer than this are treated as tied during ranking.
	TieBand float64 `yaml:"tie_band" validate:"gte=0"`

	WeightSumTolerance float64 `yaml:"weight_sum_tolerance" validate:"gt=0"`
}

// ScoringWeights is the [occupancy, acceleration, uplift] weight triple.
type ScoringWeights struct {
	Occupancy    float64 `yaml:"occupancy" validate:"gte=0"`
	Acceleration float64 `yaml:"acceleration" validate:"gte=0"`
	Uplift       float64 `yaml:"uplift" validate:"gte=0"`
}

// Sum returns the total of the weight triple.
func (w ScoringWeights) Sum() float64 {
	return w.Occupancy + w.Acceleration + w.Uplift
}

// CommissionRange is the assumed OTA commission band.
type CommissionRange struct {
	Low  float64 `yaml:"low" validate:"gte=0,lte=1"`
	High float64 `yaml:"high" validate:"gte=0,lte=1"`
}

// Mid returns the midpoint of the band.
func (c CommissionRange) Mid() float64 {
	return (c.Low + c.High) / 2
}

// OversellConfig gates and parameterizes the tier-2 overbooking card.
// The recovery heuristic (7d cancels x weeks x haircut, monetized at the
// exposure share of walk cost) is pinned configuration, not a derivation.
type OversellConfig struct {
	Enabled        bool    `yaml:"enabled"`
	RecoveryWeeks  float64 `yaml:"recovery_weeks" validate:"gt=0"`
	RecoveryFactor float64 `yaml:"recovery_factor" validate:"gt=0,lte=1"`
	Exposure       float64 `yaml:"exposure" validate:"gt=0,lte=1"`
}

// DefaultInsights returns the shipped defaults.
func DefaultInsights() InsightsConfig {
	return InsightsConfig{
		FloorOcc:         0.50,
		HotOcc:           0.85,
		PaceGapThreshold: -15,
		AccelCap:         2.0,
		Scoring: ScoringConfig{
			CLow:  0.30,
			CHigh: 0.95,
			ULow:  0.00,
			UHigh: 0.25,
			Weights: ScoringWeights{
				Occupancy:    0.45,
				Acceleration: 0.25,
				Uplift:       0.30,
			},
			TieBand:            0.02,
			WeightSumTolerance: 0.01,
		},
		Commission: CommissionRange{Low: 0.15, High: 0.18},
		Oversell: OversellConfig{
			Enabled:        false,
			RecoveryWeeks:  4,
			RecoveryFactor: 0.8,
			Exposure:       0.5,
		},
		WalkCostPerGuest: 500000,
		Eps:              0.1,
	}
}

// LoadInsights reads and validates an insights configuration file.
// Fields absent from the file keep their defaults.
func LoadInsights(path string) (InsightsConfig, error) {
	cfg := DefaultInsights()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate fails fast on configurations that would produce nonsensical
// scores: a degenerate normalization band or an unbalanced weight triple
// silently corrupts every ranking downstream.
func (c InsightsConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.HotOcc <= c.FloorOcc {
		return fmt.Errorf("hot_occ %.2f must exceed floor_occ %.2f", c.HotOcc, c.FloorOcc)
	}

	if c.AccelCap <= 1.0 {
		return fmt.Errorf("accel_cap %.2f must exceed 1.0", c.AccelCap)
	}

	if c.Scoring.CHigh <= c.Scoring.CLow {
		return fmt.Errorf("scoring c_high %.2f must exceed c_low %.2f", c.Scoring.CHigh, c.Scoring.CLow)
	}

	if c.Scoring.UHigh <= c.Scoring.ULow {
		return fmt.Errorf("scoring u_high %.2f must exceed u_low %.2f", c.Scoring.UHigh, c.Scoring.ULow)
	}

	if sum := c.Scoring.Weights.Sum(); math.Abs(sum-1.0) > c.Scoring.WeightSumTolerance {
		return fmt.Errorf("scoring weights sum to %.4f, expected 1.0 ± %.3f",
			sum, c.Scoring.WeightSumTolerance)
	}

	if c.Commission.Low > c.Commission.High {
		return fmt.Errorf("commission range inverted: low %.3f > high %.3f",
			c.Commission.Low, c.Commission.High)
	}

	return nil
}

// DefaultInsightsPath returns the shipped configuration file location.
func DefaultInsightsPath() string {
	return filepath.Join("config", "insights.yaml")
}
