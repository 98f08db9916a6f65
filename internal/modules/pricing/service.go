// README: Pricing engine; computes bounded fare quotes from base fare and dynamic multipliers.
package pricing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pulse/internal/cache"
	"pulse/internal/location"
	"pulse/internal/market"
	"pulse/internal/modules/demand"
	"pulse/internal/types"
)

const fallbackQuoteConfidence = 0.30

// Weather and event surge tables. Distinct from the demand tables: these
// express rider willingness to pay, not request volume.
var defaultWeatherMultipliers = map[market.WeatherCondition]float64{
	market.WeatherClear:     1.0,
	market.WeatherCloudy:    1.0,
	market.WeatherRain:      1.15,
	market.WeatherHeavyRain: 1.3,
	market.WeatherSnow:      1.35,
	market.WeatherFog:       1.1,
}

var defaultEventMultipliers = map[string]float64{
	"concert":  1.3,
	"sports":   1.25,
	"festival": 1.2,
	"parade":   1.15,
}

const defaultEventMultiplier = 1.1

// Predictor is the slice of the demand service pricing needs. The time
// multiplier reuses the same hourly pattern the forecast applies.
type Predictor interface {
	Predict(ctx context.Context, loc types.Point, at time.Time) demand.PredictedDemand
	HourlyMultiplier(hour int) float64
}

// SnapshotSource yields the latest market snapshot.
type SnapshotSource interface {
	Current() *market.Snapshot
}

type Service struct {
	params FareParams
	demand Predictor
	market SnapshotSource
	cache  *cache.Cache[string, Quote]
	logger *logrus.Logger
}

func NewService(params FareParams, predictor Predictor, snapshots SnapshotSource, cacheTTL time.Duration, logger *logrus.Logger) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("fare params: %w", err)
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		params: params,
		demand: predictor,
		market: snapshots,
		cache:  cache.New[string, Quote](cacheTTL),
		logger: logger,
	}, nil
}

// Quote computes the optimal fare for a ride request. The only error it
// returns is types.ErrInvalidRequest for malformed input; any internal
// failure degrades to a documented fallback quote, since a payment flow is
// about to depend on the result.
func (s *Service) Quote(ctx context.Context, req types.RideRequest) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}

	key := location.PairKey(req.Pickup, req.Dropoff)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	quote := s.compute(ctx, req)
	s.cache.Set(key, quote)
	return quote, nil
}

func (s *Service) compute(ctx context.Context, req types.RideRequest) (quote Quote) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("quote computation failed, returning fallback")
			quote = s.fallbackQuote(req)
		}
	}()

	distanceKm := location.HaversineKm(req.Pickup, req.Dropoff)
	durationMin := distanceKm / s.params.AvgSpeedKmH * 60
	baseFare := s.params.FlatRate +
		s.params.PerKmRate*distanceKm +
		s.params.PerMinuteRate*durationMin

	snap := s.market.Current()
	predicted := s.demand.Predict(ctx, req.Pickup, snap.Timestamp)

	supply := snap.DriverSupplyCount
	if supply < 1 {
		supply = 1
	}
	ratio := float64(predicted.Value) / float64(supply)

	mults := Multipliers{
		Demand:  demandMultiplier(ratio),
		Time:    s.demand.HourlyMultiplier(snap.HourOfDay),
		Weather: weatherMultiplier(snap.Weather),
		Event:   market.MaxEventMultiplier(snap.ActiveEvents, req.Pickup, defaultEventMultipliers, defaultEventMultiplier),
	}

	raw := baseFare * mults.Demand * mults.Time * mults.Weather * mults.Event
	clamped := math.Min(math.Max(raw, s.params.MinPrice), s.params.MaxPrice)

	return Quote{
		ID:                types.ID(uuid.NewString()),
		Price:             types.MoneyFromFloat(clamped, s.params.Currency),
		BaseFare:          types.MoneyFromFloat(baseFare, s.params.Currency),
		DistanceKm:        distanceKm,
		DurationMinutes:   durationMin,
		Multipliers:       mults,
		DemandSupplyRatio: ratio,
		CommissionRate:    s.commissionRate(ratio),
		Confidence:        predicted.Confidence,
		ComputedAt:        time.Now().UTC(),
	}
}

// demandMultiplier is a step function over the demand/supply ratio; the
// highest band whose threshold the ratio meets or exceeds applies.
func demandMultiplier(ratio float64) float64 {
	switch {
	case ratio >= 2.0:
		return 1.5
	case ratio >= 1.5:
		return 1.3
	case ratio >= 1.0:
		return 1.1
	default:
		return 0.9
	}
}

// commissionRate scales the base commission: driver-favorable when demand far
// outstrips supply, platform-favorable when drivers idle.
func (s *Service) commissionRate(ratio float64) float64 {
	switch {
	case ratio > 2.0:
		return s.params.BaseCommission * 0.8
	case ratio < 0.5:
		return s.params.BaseCommission * 1.2
	default:
		return s.params.BaseCommission
	}
}

func weatherMultiplier(w market.WeatherCondition) float64 {
	if m, ok := defaultWeatherMultipliers[w]; ok {
		return m
	}
	return 1.0
}

// fallbackQuote is the documented degraded result: flat base fare, neutral
// multipliers, base commission, low confidence.
func (s *Service) fallbackQuote(req types.RideRequest) Quote {
	base := s.params.FlatRate
	price := math.Min(math.Max(base, s.params.MinPrice), s.params.MaxPrice)
	return Quote{
		ID:             types.ID(uuid.NewString()),
		Price:          types.MoneyFromFloat(price, s.params.Currency),
		BaseFare:       types.MoneyFromFloat(base, s.params.Currency),
		Multipliers:    Multipliers{Demand: 1, Time: 1, Weather: 1, Event: 1},
		CommissionRate: s.params.BaseCommission,
		Confidence:     fallbackQuoteConfidence,
		ComputedAt:     time.Now().UTC(),
	}
}
