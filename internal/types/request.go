// README: Ride request value type consumed by all scoring operations.
package types

import (
	"errors"
	"time"
)

var ErrInvalidRequest = errors.New("invalid ride request")

// RideRequest is the plain input every scoring operation accepts. Timestamps
// are UTC instants; coordinates are decimal-degree pairs.
type RideRequest struct {
	ID          ID                `json:"id"`
	RiderID     ID                `json:"rider_id"`
	Pickup      Point             `json:"pickup"`
	Dropoff     Point             `json:"dropoff"`
	VehicleType string            `json:"vehicle_type"`
	Preferences map[string]string `json:"preferences,omitempty"`
	RequestedAt time.Time         `json:"requested_at"`
}

// Validate rejects malformed requests. A failure here indicates a caller bug
// and is surfaced, unlike transient upstream issues which never are.
func (r RideRequest) Validate() error {
	if r.RiderID == "" {
		return ErrInvalidRequest
	}
	if !r.Pickup.Valid() || !r.Dropoff.Valid() {
		return ErrInvalidRequest
	}
	return nil
}
