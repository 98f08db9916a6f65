package demand

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/market"
	"pulse/internal/types"
)

type stubSnapshots struct {
	snap *market.Snapshot
}

func (s stubSnapshots) Current() *market.Snapshot { return s.snap }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestService(t *testing.T, snap *market.Snapshot) *Service {
	t.Helper()
	svc, err := NewService(stubSnapshots{snap: snap}, DefaultPatternTables(), 5*time.Minute, testLogger())
	require.NoError(t, err)
	return svc
}

// Monday 08:00 UTC: hourly 1.5, daily 1.0.
var mondayPeak = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func TestPredictMultipliesAllFactors(t *testing.T) {
	svc := newTestService(t, &market.Snapshot{
		Weather:         market.WeatherRain, // 1.2
		AggregateDemand: 80,
	})
	// Bucket far from any seeded location multiplier.
	loc := types.Point{Lat: 51.5074, Lng: -0.1278}

	got := svc.Predict(context.Background(), loc, mondayPeak)

	// 80 * 1.5 * 1.0 * 1.0 * 1.2 * 1.0 = 144
	assert.Equal(t, 144, got.Value)
	assert.InDelta(t, 0.85, got.Confidence, 1e-9)
	assert.InDelta(t, 80, got.Factors.BaseDemand, 1e-9)
	assert.InDelta(t, 1.5, got.Factors.HourlyMultiplier, 1e-9)
	assert.InDelta(t, 1.2, got.Factors.WeatherMultiplier, 1e-9)
	assert.InDelta(t, 1.0, got.Factors.LocationMultiplier, 1e-9)
}

func TestPredictUsesTableBaseWithoutHistory(t *testing.T) {
	svc := newTestService(t, &market.Snapshot{Weather: market.WeatherClear})
	loc := types.Point{Lat: 51.5074, Lng: -0.1278}

	got := svc.Predict(context.Background(), loc, mondayPeak)

	// Table base 100 * 1.5 hourly.
	assert.Equal(t, 150, got.Value)
	assert.InDelta(t, 100, got.Factors.BaseDemand, 1e-9)
}

func TestPredictKnownLocationBucket(t *testing.T) {
	svc := newTestService(t, &market.Snapshot{Weather: market.WeatherClear, AggregateDemand: 100})
	// Rounds to the seeded "40.71:-74.01" bucket.
	loc := types.Point{Lat: 40.7128, Lng: -74.0060}

	got := svc.Predict(context.Background(), loc, mondayPeak)

	assert.InDelta(t, 1.3, got.Factors.LocationMultiplier, 1e-9)
	assert.Equal(t, 195, got.Value) // 100 * 1.5 * 1.3
}

func TestPredictEventUplift(t *testing.T) {
	loc := types.Point{Lat: 40.7580, Lng: -73.9855}
	svc := newTestService(t, &market.Snapshot{
		Weather:         market.WeatherClear,
		AggregateDemand: 100,
		ActiveEvents: []market.Event{
			{Name: "garden show", Category: "concert", Location: loc, RadiusKm: 2},
		},
	})

	got := svc.Predict(context.Background(), loc, mondayPeak)
	assert.InDelta(t, 1.4, got.Factors.EventMultiplier, 1e-9)
}

func TestPredictDeterministicWithinTTL(t *testing.T) {
	svc := newTestService(t, &market.Snapshot{Weather: market.WeatherClear, AggregateDemand: 90})
	loc := types.Point{Lat: 40.7128, Lng: -74.0060}

	first := svc.Predict(context.Background(), loc, mondayPeak)
	second := svc.Predict(context.Background(), loc, mondayPeak)

	assert.Equal(t, first, second, "repeat call within TTL must return the cached result")
	assert.Equal(t, first.ComputedAt, second.ComputedAt, "cached result must not be recomputed")
}

func TestPredictNearbyPickupsShareForecast(t *testing.T) {
	svc := newTestService(t, &market.Snapshot{Weather: market.WeatherClear, AggregateDemand: 90})

	a := svc.Predict(context.Background(), types.Point{Lat: 40.7128, Lng: -74.0060}, mondayPeak)
	b := svc.Predict(context.Background(), types.Point{Lat: 40.7131, Lng: -74.0055}, mondayPeak)

	assert.Equal(t, a, b, "points in the same grid bucket share a cache entry")
}

func TestPredictFallbackOnInternalError(t *testing.T) {
	svc, err := NewService(nil, DefaultPatternTables(), 5*time.Minute, testLogger())
	require.NoError(t, err)

	// A nil snapshot source panics internally; the boundary must convert
	// that into the documented fallback, never an abort.
	got := svc.Predict(context.Background(), types.Point{Lat: 40.7128, Lng: -74.0060}, mondayPeak)

	assert.Equal(t, fallbackDemand, got.Value)
	assert.InDelta(t, fallbackConfidence, got.Confidence, 1e-9)
}

func TestNewServiceRejectsPartialTables(t *testing.T) {
	tables := DefaultPatternTables()
	delete(tables.Hourly, 13)

	_, err := NewService(stubSnapshots{snap: &market.Snapshot{}}, tables, 5*time.Minute, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hour 13")
}

func TestNewServiceRejectsMissingWeekday(t *testing.T) {
	tables := DefaultPatternTables()
	delete(tables.Daily, time.Friday)

	_, err := NewService(stubSnapshots{snap: &market.Snapshot{}}, tables, 5*time.Minute, testLogger())
	require.Error(t, err)
}
