// README: Fare parameters and quote result types.
package pricing

import (
	"fmt"
	"time"

	"pulse/internal/types"
)

// FareParams are the static pricing knobs. Validated at load time; the quote
// invariant minPrice <= price <= maxPrice holds for every computed quote.
type FareParams struct {
	FlatRate      float64
	PerKmRate     float64
	PerMinuteRate float64
	// AvgSpeedKmH derives trip duration from distance; the engine performs no
	// live traffic lookups on the scoring path.
	AvgSpeedKmH    float64
	MinPrice       float64
	MaxPrice       float64
	BaseCommission float64
	Currency       string
}

// DefaultFareParams returns the production defaults.
func DefaultFareParams() FareParams {
	return FareParams{
		FlatRate:       2.50,
		PerKmRate:      1.20,
		PerMinuteRate:  0.35,
		AvgSpeedKmH:    30,
		MinPrice:       5.00,
		MaxPrice:       150.00,
		BaseCommission: 0.20,
		Currency:       "USD",
	}
}

func (p FareParams) Validate() error {
	switch {
	case p.FlatRate < 0 || p.PerKmRate < 0 || p.PerMinuteRate < 0:
		return fmt.Errorf("fare rates must not be negative")
	case p.AvgSpeedKmH <= 0:
		return fmt.Errorf("average speed must be positive, got %v", p.AvgSpeedKmH)
	case p.MinPrice < 0 || p.MaxPrice <= 0 || p.MinPrice > p.MaxPrice:
		return fmt.Errorf("price bounds invalid: min %v, max %v", p.MinPrice, p.MaxPrice)
	case p.BaseCommission <= 0 || p.BaseCommission >= 1:
		return fmt.Errorf("base commission must be in (0,1), got %v", p.BaseCommission)
	case p.Currency == "":
		return fmt.Errorf("currency is required")
	}
	return nil
}

// Multipliers records each dynamic factor applied to the base fare.
type Multipliers struct {
	Demand  float64 `json:"demand"`
	Time    float64 `json:"time"`
	Weather float64 `json:"weather"`
	Event   float64 `json:"event"`
}

// Quote is a bounded fare quote. Price is rounded to two decimal places only
// at assembly; intermediate math stays unrounded to avoid compounding error.
type Quote struct {
	ID                types.ID    `json:"id"`
	Price             types.Money `json:"price"`
	BaseFare          types.Money `json:"base_fare"`
	DistanceKm        float64     `json:"distance_km"`
	DurationMinutes   float64     `json:"duration_minutes"`
	Multipliers       Multipliers `json:"multipliers"`
	DemandSupplyRatio float64     `json:"demand_supply_ratio"`
	CommissionRate    float64     `json:"commission_rate"`
	Confidence        float64     `json:"confidence"`
	ComputedAt        time.Time   `json:"computed_at"`
}
