// README: Shared identifier and coordinate value types used across modules.
package types

// ID is an opaque entity identifier (driver, rider, quote, assessment).
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point is a plausible coordinate. The null island
// origin is treated as missing data, not a real pickup spot.
func (p Point) Valid() bool {
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return false
	}
	if p.Lat == 0 && p.Lng == 0 {
		return false
	}
	return true
}
