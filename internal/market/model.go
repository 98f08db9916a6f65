// README: Immutable market snapshot domain types.
package market

import (
	"time"

	"pulse/internal/location"
	"pulse/internal/types"
)

type WeatherCondition string

const (
	WeatherClear     WeatherCondition = "clear"
	WeatherCloudy    WeatherCondition = "cloudy"
	WeatherRain      WeatherCondition = "rain"
	WeatherHeavyRain WeatherCondition = "heavy_rain"
	WeatherSnow      WeatherCondition = "snow"
	WeatherFog       WeatherCondition = "fog"
)

// Event is a scheduled crowd-drawing happening (concert, game, festival) that
// raises demand within its radius.
type Event struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Location types.Point `json:"location"`
	RadiusKm float64     `json:"radius_km"`
}

// Covers reports whether p falls inside the event's impact radius.
func (e Event) Covers(p types.Point) bool {
	return location.HaversineKm(e.Location, p) <= e.RadiusKm
}

// Snapshot is the latest known aggregate of time, weather, event, supply and
// demand conditions. A snapshot is immutable once published; refresh builds a
// fresh one and swaps the pointer, so readers never observe a partial update.
type Snapshot struct {
	Timestamp         time.Time        `json:"timestamp"`
	HourOfDay         int              `json:"hour_of_day"`
	Weekday           time.Weekday     `json:"weekday"`
	IsPeak            bool             `json:"is_peak"`
	IsWeekend         bool             `json:"is_weekend"`
	Weather           WeatherCondition `json:"weather"`
	ActiveEvents      []Event          `json:"active_events"`
	DriverSupplyCount int              `json:"driver_supply_count"`
	AggregateDemand   float64          `json:"aggregate_demand"`
}

// newSnapshotAt fills the clock-derived fields for the given instant.
func newSnapshotAt(now time.Time) *Snapshot {
	now = now.UTC()
	hour := now.Hour()
	wd := now.Weekday()
	return &Snapshot{
		Timestamp: now,
		HourOfDay: hour,
		Weekday:   wd,
		IsPeak:    (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

// MaxEventMultiplier returns the largest multiplier from table among events
// covering p. Events of an unknown category use def. With no covering event
// the multiplier is a neutral 1.0.
func MaxEventMultiplier(events []Event, p types.Point, table map[string]float64, def float64) float64 {
	mult := 1.0
	for _, e := range events {
		if !e.Covers(p) {
			continue
		}
		m, ok := table[e.Category]
		if !ok {
			m = def
		}
		if m > mult {
			mult = m
		}
	}
	return mult
}
