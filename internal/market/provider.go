// README: Upstream data provider interfaces and the offline defaults.
package market

import (
	"context"
	"time"
)

// The engine assumes nothing about upstream availability: every provider
// returns value-or-error, and a failing provider never reaches scoring
// callers — the store falls back to the last good snapshot.

type WeatherProvider interface {
	CurrentWeather(ctx context.Context) (WeatherCondition, error)
}

type EventProvider interface {
	ActiveEvents(ctx context.Context) ([]Event, error)
}

type SupplyProvider interface {
	DriverCount(ctx context.Context) (int, error)
}

type HistoryProvider interface {
	// AggregateDemand returns the historical average ride requests for the
	// given hour and weekday, or 0 when no history exists.
	AggregateDemand(ctx context.Context, hour int, weekday time.Weekday) (float64, error)
}

// Providers bundles the four upstream sources a refresh queries.
type Providers struct {
	Weather WeatherProvider
	Events  EventProvider
	Supply  SupplyProvider
	History HistoryProvider
}

// Offline defaults, used in tests and whenever real infrastructure is not
// configured. These are the documented substitution values, not hidden stubs.
const (
	defaultDriverSupply    = 25
	defaultAggregateDemand = 0 // no history: predictors fall back to their table base
)

type offlineWeather struct{ condition WeatherCondition }

func (p offlineWeather) CurrentWeather(context.Context) (WeatherCondition, error) {
	return p.condition, nil
}

type offlineEvents struct{ events []Event }

func (p offlineEvents) ActiveEvents(context.Context) ([]Event, error) {
	return p.events, nil
}

type offlineSupply struct{ count int }

func (p offlineSupply) DriverCount(context.Context) (int, error) {
	return p.count, nil
}

type offlineHistory struct{ demand float64 }

func (p offlineHistory) AggregateDemand(context.Context, int, time.Weekday) (float64, error) {
	return p.demand, nil
}

// OfflineProviders returns a provider set backed entirely by fixed defaults.
func OfflineProviders() Providers {
	return Providers{
		Weather: offlineWeather{condition: WeatherClear},
		Events:  offlineEvents{},
		Supply:  offlineSupply{count: defaultDriverSupply},
		History: offlineHistory{demand: defaultAggregateDemand},
	}
}
