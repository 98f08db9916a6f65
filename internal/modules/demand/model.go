// README: Demand forecast result types.
package demand

import "time"

// Factors breaks a forecast down into its multiplicative parts, so the
// reporting workflow can show why a number came out the way it did.
type Factors struct {
	BaseDemand         float64 `json:"base_demand"`
	HourlyMultiplier   float64 `json:"hourly_multiplier"`
	DailyMultiplier    float64 `json:"daily_multiplier"`
	LocationMultiplier float64 `json:"location_multiplier"`
	WeatherMultiplier  float64 `json:"weather_multiplier"`
	EventMultiplier    float64 `json:"event_multiplier"`
}

// PredictedDemand is a point-in-time forecast of ride requests for a location
// bucket. It lives no longer than the cache TTL and is never persisted.
type PredictedDemand struct {
	Value      int       `json:"value"`
	Confidence float64   `json:"confidence"`
	Factors    Factors   `json:"factors"`
	ComputedAt time.Time `json:"computed_at"`
}
