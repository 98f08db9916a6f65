// README: Demand predictor; multiplicative pattern model over the market snapshot.
package demand

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"pulse/internal/cache"
	"pulse/internal/location"
	"pulse/internal/market"
	"pulse/internal/types"
)

const (
	// patternConfidence reflects pattern-table coverage; it is a derived
	// scalar, not a measured statistic.
	patternConfidence = 0.85
	// fallbackDemand and fallbackConfidence are returned when prediction
	// fails internally. The caller's flow must never abort on a forecast.
	fallbackDemand     = 50
	fallbackConfidence = 0.40
)

// SnapshotSource yields the latest market snapshot. Implemented by
// market.Store; substituted directly in tests.
type SnapshotSource interface {
	Current() *market.Snapshot
}

type Service struct {
	market SnapshotSource
	tables PatternTables
	cache  *cache.Cache[string, PredictedDemand]
	logger *logrus.Logger
}

// NewService validates the pattern tables and builds the predictor with its
// own result cache.
func NewService(snapshots SnapshotSource, tables PatternTables, cacheTTL time.Duration, logger *logrus.Logger) (*Service, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("demand pattern tables: %w", err)
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		market: snapshots,
		tables: tables,
		cache:  cache.New[string, PredictedDemand](cacheTTL),
		logger: logger,
	}, nil
}

// HourlyMultiplier exposes the hourly pattern so pricing applies the same
// time curve the forecast uses.
func (s *Service) HourlyMultiplier(hour int) float64 {
	return s.tables.Hourly[hour]
}

// Predict forecasts ride demand for a location at the given instant. It is a
// pure function of (inputs, snapshot, cache state), deterministic within the
// cache TTL, and never fails: internal errors yield a fixed fallback value
// with reduced confidence.
func (s *Service) Predict(ctx context.Context, loc types.Point, at time.Time) (result PredictedDemand) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("demand prediction failed, returning fallback")
			result = PredictedDemand{
				Value:      fallbackDemand,
				Confidence: fallbackConfidence,
				ComputedAt: time.Now().UTC(),
			}
		}
	}()

	at = at.UTC()
	bucket := location.GridBucket(loc)
	key := fmt.Sprintf("%s|%d|%d", bucket, at.Hour(), at.Weekday())
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	snap := s.market.Current()

	base := s.tables.BaseDemand
	if snap.AggregateDemand > 0 {
		base = snap.AggregateDemand
	}

	factors := Factors{
		BaseDemand:         base,
		HourlyMultiplier:   s.tables.Hourly[at.Hour()],
		DailyMultiplier:    s.tables.Daily[at.Weekday()],
		LocationMultiplier: s.locationMultiplier(bucket),
		WeatherMultiplier:  s.weatherMultiplier(snap.Weather),
		EventMultiplier:    market.MaxEventMultiplier(snap.ActiveEvents, loc, s.tables.EventCategory, s.tables.EventDefault),
	}

	value := factors.BaseDemand *
		factors.HourlyMultiplier *
		factors.DailyMultiplier *
		factors.LocationMultiplier *
		factors.WeatherMultiplier *
		factors.EventMultiplier

	result = PredictedDemand{
		Value:      int(math.Round(value)),
		Confidence: patternConfidence,
		Factors:    factors,
		ComputedAt: time.Now().UTC(),
	}
	s.cache.Set(key, result)
	return result
}

func (s *Service) locationMultiplier(bucket string) float64 {
	if m, ok := s.tables.Location[bucket]; ok {
		return m
	}
	return 1.0
}

func (s *Service) weatherMultiplier(w market.WeatherCondition) float64 {
	if m, ok := s.tables.Weather[w]; ok {
		return m
	}
	return 1.0
}
