// README: Match ranker; weighted multi-criterion scoring over the candidate pool.
package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"pulse/internal/location"
	"pulse/internal/types"
)

// ErrNoCandidates is surfaced when ranking is invoked with an empty driver
// pool, so the caller can retry driver search.
var ErrNoCandidates = errors.New("no candidate drivers")

const (
	// topCandidates is how many ranked drivers a result carries.
	topCandidates = 3
	// maxDistanceKm is where the distance score bottoms out.
	maxDistanceKm = 10.0
	// absentPreferencesScore is the documented fallback when either side
	// states no preferences.
	absentPreferencesScore = 0.5
	maxAggregateConfidence = 0.95
)

type Service struct {
	weights Weights
	logger  *logrus.Logger
}

func NewService(weights Weights, logger *logrus.Logger) (*Service, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("match weights: %w", err)
	}
	return &Service{weights: weights, logger: logger}, nil
}

// Rank scores every candidate driver against the request and returns the
// top candidates, best first. Fully deterministic for identical inputs: ties
// break by ascending distance, then by driver ID.
func (s *Service) Rank(req types.RideRequest, drivers []Driver) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if len(drivers) == 0 {
		return Result{}, ErrNoCandidates
	}

	candidates := make([]Candidate, len(drivers))
	for i, d := range drivers {
		km := location.HaversineKm(req.Pickup, d.Position)
		candidates[i] = s.scoreCandidate(req, d, km)
	}
	sortCandidates(candidates)

	if len(candidates) > topCandidates {
		candidates = candidates[:topCandidates]
	}

	return Result{
		RankedCandidates:    candidates,
		BestMatch:           candidates[0],
		AggregateConfidence: aggregateConfidence(candidates),
	}, nil
}

func (s *Service) scoreCandidate(req types.RideRequest, d Driver, distanceKm float64) Candidate {
	comps := ComponentScores{
		Distance:     math.Max(0, 1-distanceKm/maxDistanceKm),
		Rating:       clampScore(d.Rating / 5.0),
		Availability: 0,
		VehicleType:  vehicleTypeScore(req.VehicleType, d.VehicleType),
		Preferences:  preferencesScore(req.Preferences, d.Preferences),
	}
	if d.Available {
		comps.Availability = 1
	}

	weighted := s.weights.Distance*comps.Distance +
		s.weights.Rating*comps.Rating +
		s.weights.Availability*comps.Availability +
		s.weights.VehicleType*comps.VehicleType +
		s.weights.Preferences*comps.Preferences

	return Candidate{
		Driver:        d,
		DistanceKm:    distanceKm,
		Components:    comps,
		WeightedScore: weighted,
	}
}

// sortCandidates orders by weighted score descending, then ascending distance,
// then driver ID, so equal inputs always produce the same ranking.
func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.WeightedScore != b.WeightedScore {
			return a.WeightedScore > b.WeightedScore
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.Driver.ID < b.Driver.ID
	})
}

// preferencesScore is the fraction of requested preferences the driver
// matches. Either side silent: the documented 0.5 fallback.
func preferencesScore(requested, offered map[string]string) float64 {
	if len(requested) == 0 || len(offered) == 0 {
		return absentPreferencesScore
	}
	matched := 0
	for k, want := range requested {
		if offered[k] == want {
			matched++
		}
	}
	return float64(matched) / float64(len(requested))
}

// aggregateConfidence summarizes match quality across the returned set as
// the mean weighted score, capped at the engine-wide ceiling.
func aggregateConfidence(candidates []Candidate) float64 {
	sum := 0.0
	for _, c := range candidates {
		sum += c.WeightedScore
	}
	conf := sum / float64(len(candidates))
	return math.Min(conf, maxAggregateConfidence)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
