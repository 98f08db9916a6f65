package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/types"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// failingSupply simulates an unavailable upstream.
type failingSupply struct{}

func (failingSupply) DriverCount(context.Context) (int, error) {
	return 0, errors.New("upstream unavailable")
}

func TestStoreSeededBeforeFirstRefresh(t *testing.T) {
	s := NewStore(OfflineProviders(), StoreConfig{}, testLogger())

	snap := s.Current()
	require.NotNil(t, snap, "Current must never return nil")
	assert.Equal(t, WeatherClear, snap.Weather)
	assert.Positive(t, snap.DriverSupplyCount)
}

func TestStoreRefreshPublishesNewSnapshot(t *testing.T) {
	providers := OfflineProviders()
	providers.Supply = offlineSupply{count: 42}
	providers.History = offlineHistory{demand: 120}
	s := NewStore(providers, StoreConfig{}, testLogger())

	before := s.Current()
	s.Refresh(context.Background())
	after := s.Current()

	require.NotSame(t, before, after, "refresh must swap in a fresh snapshot")
	assert.Equal(t, 42, after.DriverSupplyCount)
	assert.Equal(t, 120.0, after.AggregateDemand)
	assert.Equal(t, int64(0), s.DegradedRefreshes())
}

func TestStoreRefreshClockFields(t *testing.T) {
	s := NewStore(OfflineProviders(), StoreConfig{}, testLogger())
	s.Refresh(context.Background())

	snap := s.Current()
	now := time.Now().UTC()
	assert.Equal(t, now.Hour(), snap.HourOfDay)
	assert.Equal(t, now.Weekday(), snap.Weekday)
	assert.Equal(t, snap.Weekday == time.Saturday || snap.Weekday == time.Sunday, snap.IsWeekend)
}

func TestStoreRetainsSnapshotOnProviderFailure(t *testing.T) {
	providers := OfflineProviders()
	s := NewStore(providers, StoreConfig{}, testLogger())
	s.Refresh(context.Background())
	good := s.Current()

	providers.Supply = failingSupply{}
	s2 := &Store{providers: providers, cfg: s.cfg, logger: testLogger()}
	s2.current.Store(good)
	s2.Refresh(context.Background())

	assert.Same(t, good, s2.Current(), "failed refresh must retain the last good snapshot")
	assert.Equal(t, int64(1), s2.DegradedRefreshes())
}

func TestStoreRefreshLoopStopsOnCancel(t *testing.T) {
	s := NewStore(OfflineProviders(), StoreConfig{RefreshInterval: 5 * time.Millisecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunRefreshLoop(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop after cancellation")
	}
	assert.NotNil(t, s.Current())
}

func TestMaxEventMultiplier(t *testing.T) {
	table := map[string]float64{"concert": 1.4, "sports": 1.3}
	downtown := types.Point{Lat: 40.7128, Lng: -74.0060}
	uptown := types.Point{Lat: 40.7812, Lng: -73.9665}

	events := []Event{
		{Name: "stadium game", Category: "sports", Location: downtown, RadiusKm: 3},
		{Name: "arena show", Category: "concert", Location: downtown, RadiusKm: 3},
	}

	assert.InDelta(t, 1.4, MaxEventMultiplier(events, downtown, table, 1.1), 1e-9,
		"highest covering multiplier wins")
	assert.InDelta(t, 1.0, MaxEventMultiplier(events, uptown, table, 1.1), 1e-9,
		"no covering event means neutral multiplier")

	unknown := []Event{{Name: "street fair", Category: "fair", Location: downtown, RadiusKm: 3}}
	assert.InDelta(t, 1.1, MaxEventMultiplier(unknown, downtown, table, 1.1), 1e-9,
		"unknown category falls back to the default")
}

func TestEventCovers(t *testing.T) {
	e := Event{Location: types.Point{Lat: 40.7128, Lng: -74.0060}, RadiusKm: 2}
	assert.True(t, e.Covers(types.Point{Lat: 40.7150, Lng: -74.0040}))
	assert.False(t, e.Covers(types.Point{Lat: 40.7589, Lng: -73.9851}))
}
