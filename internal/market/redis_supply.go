// README: Driver-supply provider backed by Redis GEO.
package market

import (
	"context"

	"github.com/redis/go-redis/v9"

	"pulse/internal/types"
)

const driverGeoKey = "pulse:drivers:geo"

// RedisSupplyProvider counts available drivers inside the serviced area from
// a Redis GEO set. The set is maintained by the driver-location endpoints.
type RedisSupplyProvider struct {
	redis    *redis.Client
	center   types.Point
	radiusKm float64
}

func NewRedisSupplyProvider(client *redis.Client, center types.Point, radiusKm float64) *RedisSupplyProvider {
	return &RedisSupplyProvider{redis: client, center: center, radiusKm: radiusKm}
}

// DriverCount returns the number of tracked drivers within the serviced
// radius around the city center.
func (p *RedisSupplyProvider) DriverCount(ctx context.Context) (int, error) {
	results, err := p.redis.GeoSearch(ctx, driverGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.center.Lng,
		Latitude:   p.center.Lat,
		Radius:     p.radiusKm,
		RadiusUnit: "km",
	}).Result()
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// TrackDriver upserts a driver's position into the supply set.
func (p *RedisSupplyProvider) TrackDriver(ctx context.Context, id types.ID, pos types.Point) error {
	return p.redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

// UntrackDriver removes a driver from the supply set (went offline).
func (p *RedisSupplyProvider) UntrackDriver(ctx context.Context, id types.ID) error {
	return p.redis.ZRem(ctx, driverGeoKey, string(id)).Err()
}
