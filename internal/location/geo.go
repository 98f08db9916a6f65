// Package location contains pure geographic computation helpers.
package location

import (
	"fmt"
	"math"

	"pulse/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// GridBucket maps a point onto a coarse cache bucket by rounding coordinates
// to two decimal places (cells of roughly 1.1 km at the equator). Demand for
// nearby pickups lands in the same bucket, which keeps cache hit rates useful
// under real traffic.
func GridBucket(p types.Point) string {
	return fmt.Sprintf("%.2f:%.2f", p.Lat, p.Lng)
}

// PairKey builds a cache key from a pickup/dropoff pair rounded to four
// decimal places (about 11 m), bounding key cardinality without merging
// genuinely different trips.
func PairKey(pickup, dropoff types.Point) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f", pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng)
}
