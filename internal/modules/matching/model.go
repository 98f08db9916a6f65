// README: Match candidates, ranking weights, and vehicle compatibility.
package matching

import (
	"fmt"
	"math"

	"pulse/internal/types"
)

// Driver is one entry of the candidate pool handed in by the dispatch
// workflow. The engine does not discover drivers itself.
type Driver struct {
	ID          types.ID          `json:"id"`
	Position    types.Point       `json:"position"`
	Rating      float64           `json:"rating"` // 0..5
	Available   bool              `json:"available"`
	VehicleType string            `json:"vehicle_type"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// ComponentScores are the per-criterion compatibility scores, each in [0,1].
type ComponentScores struct {
	Distance     float64 `json:"distance"`
	Rating       float64 `json:"rating"`
	Availability float64 `json:"availability"`
	VehicleType  float64 `json:"vehicle_type"`
	Preferences  float64 `json:"preferences"`
}

// Candidate is a scored driver.
type Candidate struct {
	Driver        Driver          `json:"driver"`
	DistanceKm    float64         `json:"distance_km"`
	Components    ComponentScores `json:"components"`
	WeightedScore float64         `json:"weighted_score"`
}

// Result is the ranked outcome: at most topCandidates entries, best first.
type Result struct {
	RankedCandidates    []Candidate `json:"ranked_candidates"`
	BestMatch           Candidate   `json:"best_match"`
	AggregateConfidence float64     `json:"aggregate_confidence"`
}

// Weights is the convex combination over the five criteria. Must sum to 1.0;
// NewService refuses anything else.
type Weights struct {
	Distance     float64
	Rating       float64
	Availability float64
	VehicleType  float64
	Preferences  float64
}

// DefaultWeights returns the production-tuned ranking weights.
func DefaultWeights() Weights {
	return Weights{
		Distance:     0.30,
		Rating:       0.25,
		Availability: 0.20,
		VehicleType:  0.15,
		Preferences:  0.10,
	}
}

func (w Weights) Validate() error {
	for _, v := range []float64{w.Distance, w.Rating, w.Availability, w.VehicleType, w.Preferences} {
		if v < 0 {
			return fmt.Errorf("match weights must not be negative")
		}
	}
	sum := w.Distance + w.Rating + w.Availability + w.VehicleType + w.Preferences
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("match weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// vehicleCompatibility scores an offered vehicle type against the requested
// one. Unknown pairs score the documented 0.5 fallback.
var vehicleCompatibility = map[string]map[string]float64{
	"economy": {"economy": 1.0, "comfort": 0.9, "xl": 0.7, "premium": 0.6},
	"comfort": {"comfort": 1.0, "premium": 0.9, "xl": 0.7, "economy": 0.4},
	"xl":      {"xl": 1.0, "premium": 0.5, "comfort": 0.3, "economy": 0.2},
	"premium": {"premium": 1.0, "comfort": 0.6, "xl": 0.4, "economy": 0.2},
	"any":     {"economy": 1.0, "comfort": 1.0, "xl": 1.0, "premium": 1.0},
}

const unknownVehicleScore = 0.5

func vehicleTypeScore(requested, offered string) float64 {
	if row, ok := vehicleCompatibility[requested]; ok {
		if score, ok := row[offered]; ok {
			return score
		}
	}
	return unknownVehicleScore
}
