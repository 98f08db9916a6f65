// README: Demand pattern tables validated at load time.
package demand

import (
	"fmt"
	"time"

	"pulse/internal/market"
)

// PatternTables holds the immutable model tables the predictor multiplies
// together. Hourly and daily tables must cover all 24 hours and 7 weekdays;
// NewService refuses partial tables.
type PatternTables struct {
	// BaseDemand is the table fallback when the snapshot carries no
	// historical aggregate for the current hour.
	BaseDemand float64
	Hourly     map[int]float64
	Daily      map[time.Weekday]float64
	// Location multipliers are keyed by coarse grid bucket. Unknown buckets
	// default to 1.0.
	Location map[string]float64
	Weather  map[market.WeatherCondition]float64
	// EventCategory multipliers are keyed by event category; categories not
	// listed use EventDefault.
	EventCategory map[string]float64
	EventDefault  float64
}

// DefaultPatternTables returns the production-tuned tables.
func DefaultPatternTables() PatternTables {
	return PatternTables{
		BaseDemand: 100,
		Hourly: map[int]float64{
			0: 0.4, 1: 0.3, 2: 0.2, 3: 0.2, 4: 0.3, 5: 0.5,
			6: 0.8, 7: 1.3, 8: 1.5, 9: 1.2, 10: 1.0, 11: 1.0,
			12: 1.1, 13: 1.0, 14: 0.9, 15: 1.0, 16: 1.1, 17: 1.4,
			18: 1.5, 19: 1.3, 20: 1.1, 21: 1.0, 22: 0.9, 23: 0.6,
		},
		Daily: map[time.Weekday]float64{
			time.Monday:    1.0,
			time.Tuesday:   0.95,
			time.Wednesday: 0.95,
			time.Thursday:  1.0,
			time.Friday:    1.25,
			time.Saturday:  1.3,
			time.Sunday:    1.1,
		},
		Location: map[string]float64{
			// Dense core buckets (two-decimal grid cells).
			"40.71:-74.01": 1.3,
			"40.75:-73.99": 1.4,
			"40.76:-73.98": 1.25,
		},
		Weather: map[market.WeatherCondition]float64{
			market.WeatherClear:     1.0,
			market.WeatherCloudy:    1.0,
			market.WeatherRain:      1.2,
			market.WeatherHeavyRain: 1.4,
			market.WeatherSnow:      1.5,
			market.WeatherFog:       1.15,
		},
		EventCategory: map[string]float64{
			"concert":  1.4,
			"sports":   1.3,
			"festival": 1.25,
			"parade":   1.2,
		},
		EventDefault: 1.1,
	}
}

// Validate asserts full 24x7 coverage and sane multipliers.
func (t PatternTables) Validate() error {
	if t.BaseDemand <= 0 {
		return fmt.Errorf("base demand must be positive, got %v", t.BaseDemand)
	}
	for h := 0; h < 24; h++ {
		m, ok := t.Hourly[h]
		if !ok {
			return fmt.Errorf("hourly pattern missing hour %d", h)
		}
		if m <= 0 {
			return fmt.Errorf("hourly pattern for hour %d must be positive, got %v", h, m)
		}
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		m, ok := t.Daily[d]
		if !ok {
			return fmt.Errorf("daily pattern missing %s", d)
		}
		if m <= 0 {
			return fmt.Errorf("daily pattern for %s must be positive, got %v", d, m)
		}
	}
	if t.EventDefault <= 0 {
		return fmt.Errorf("event default multiplier must be positive, got %v", t.EventDefault)
	}
	return nil
}
