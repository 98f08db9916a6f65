// README: Fixed, ordered fraud rule set with additive weights.
package fraud

import (
	"math"

	"pulse/internal/location"
	"pulse/internal/types"
)

// Rule thresholds. Each rule contributes its fixed weight when triggered; the
// sum is clamped to [0,1] before bucketing.
const (
	rapidFareChangesPerHour = 3
	minPlausibleTripKm      = 0.3
	maxPlausibleTripKm      = 120.0
	spoofedAccuracyMeters   = 500.0
	newPaymentAccountDays   = 7
	paymentFailuresPerDay   = 2
	freshAccountDays        = 1
	cancellationsPerDay     = 5
	devicesPerWeek          = 4
)

// rule is one independently pluggable check. check returns whether the rule
// triggered and whether the data it needs was available; an unavailable rule
// is treated as not triggered (fail open, so fraud screening never blocks
// dispatch) and lowers the reported confidence.
type rule struct {
	name   string
	weight float64
	check  func(req types.RideRequest, user UserData) (triggered, available bool)
}

// defaultRules returns the fixed rule set in its documented order.
func defaultRules() []rule {
	return []rule{
		{
			name:   "rapid_fare_changes",
			weight: 0.30,
			check: func(_ types.RideRequest, user UserData) (bool, bool) {
				if user.FareChangesLastHour == nil {
					return false, false
				}
				return *user.FareChangesLastHour >= rapidFareChangesPerHour, true
			},
		},
		{
			name:   "unusual_route_pattern",
			weight: 0.25,
			check: func(req types.RideRequest, _ UserData) (bool, bool) {
				km := location.HaversineKm(req.Pickup, req.Dropoff)
				return km < minPlausibleTripKm || km > maxPlausibleTripKm, true
			},
		},
		{
			name:   "fake_location_data",
			weight: 0.40,
			check: func(req types.RideRequest, user UserData) (bool, bool) {
				if user.LocationAccuracyM != nil && *user.LocationAccuracyM > spoofedAccuracyMeters {
					return true, true
				}
				// Mock-GPS apps tend to report suspiciously round coordinates.
				if isIntegerPoint(req.Pickup) || isIntegerPoint(req.Dropoff) {
					return true, true
				}
				return req.Pickup == req.Dropoff, true
			},
		},
		{
			name:   "payment_anomaly",
			weight: 0.20,
			check: func(_ types.RideRequest, user UserData) (bool, bool) {
				if user.PaymentFailuresLastDay == nil && user.NewPaymentMethod == nil {
					return false, false
				}
				if user.PaymentFailuresLastDay != nil && *user.PaymentFailuresLastDay >= paymentFailuresPerDay {
					return true, true
				}
				if user.NewPaymentMethod != nil && *user.NewPaymentMethod && user.AccountAgeDays < newPaymentAccountDays {
					return true, true
				}
				return false, true
			},
		},
		{
			name:   "account_abuse",
			weight: 0.35,
			check: func(_ types.RideRequest, user UserData) (bool, bool) {
				if user.CancellationsLastDay == nil && user.DevicesLastWeek == nil {
					return false, false
				}
				if user.AccountAgeDays < freshAccountDays {
					return true, true
				}
				if user.CancellationsLastDay != nil && *user.CancellationsLastDay >= cancellationsPerDay {
					return true, true
				}
				if user.DevicesLastWeek != nil && *user.DevicesLastWeek >= devicesPerWeek {
					return true, true
				}
				return false, true
			},
		},
	}
}

func isIntegerPoint(p types.Point) bool {
	return p.Lat == math.Trunc(p.Lat) && p.Lng == math.Trunc(p.Lng)
}
