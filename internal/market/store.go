// README: Market state store; refreshes the snapshot on a timer and swaps it atomically.
package market

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// StoreConfig controls the refresh schedule.
type StoreConfig struct {
	// RefreshInterval is how often a new snapshot is built. Default 5 minutes.
	RefreshInterval time.Duration
	// RefreshTimeout bounds the upstream fetches of a single refresh. On
	// timeout the stale snapshot is retained (bounded staleness, not failure).
	RefreshTimeout time.Duration
}

// Store owns the current Snapshot pointer. The refresh loop is the only
// writer; scoring calls are arbitrarily many concurrent readers. Publication
// is a copy-and-swap of the whole pointer.
type Store struct {
	providers Providers
	cfg       StoreConfig
	logger    *logrus.Logger

	current  atomic.Pointer[Snapshot]
	degraded atomic.Int64
}

func NewStore(providers Providers, cfg StoreConfig, logger *logrus.Logger) *Store {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 10 * time.Second
	}
	s := &Store{providers: providers, cfg: cfg, logger: logger}

	// Seed with clock-only data so Current never returns nil, even before the
	// first refresh completes.
	seed := newSnapshotAt(time.Now())
	seed.Weather = WeatherClear
	seed.DriverSupplyCount = defaultDriverSupply
	s.current.Store(seed)
	return s
}

// Current returns the latest published snapshot. Non-blocking.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// DegradedRefreshes returns how many refreshes kept a stale snapshot because
// a provider failed.
func (s *Store) DegradedRefreshes() int64 {
	return s.degraded.Load()
}

// SnapshotAge returns how long ago the current snapshot was published.
func (s *Store) SnapshotAge() time.Duration {
	return time.Since(s.Current().Timestamp)
}

// Refresh queries all providers and publishes a new snapshot. If any provider
// fails the previous snapshot is retained, a degraded-refresh event is
// recorded, and the error never propagates to readers.
func (s *Store) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RefreshTimeout)
	defer cancel()

	next := newSnapshotAt(time.Now())

	weather, err := s.providers.Weather.CurrentWeather(ctx)
	if err != nil {
		s.recordDegraded("weather", err)
		return
	}
	events, err := s.providers.Events.ActiveEvents(ctx)
	if err != nil {
		s.recordDegraded("events", err)
		return
	}
	supply, err := s.providers.Supply.DriverCount(ctx)
	if err != nil {
		s.recordDegraded("supply", err)
		return
	}
	demand, err := s.providers.History.AggregateDemand(ctx, next.HourOfDay, next.Weekday)
	if err != nil {
		s.recordDegraded("history", err)
		return
	}

	next.Weather = weather
	next.ActiveEvents = events
	next.DriverSupplyCount = supply
	next.AggregateDemand = demand
	s.current.Store(next)
}

func (s *Store) recordDegraded(provider string, err error) {
	s.degraded.Add(1)
	s.logger.WithFields(logrus.Fields{
		"provider":     provider,
		"error":        err,
		"snapshot_age": s.SnapshotAge().String(),
	}).Warn("market refresh degraded, retaining last good snapshot")
}

// RunRefreshLoop refreshes immediately, then on a fixed interval until ctx is
// cancelled.
func (s *Store) RunRefreshLoop(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
