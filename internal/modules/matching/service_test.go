package matching

import (
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

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DefaultWeights(), testLogger())
	require.NoError(t, err)
	return svc
}

func testRequest() types.RideRequest {
	return types.RideRequest{
		ID:          "req-1",
		RiderID:     "rider-1",
		Pickup:      types.Point{Lat: 40.7128, Lng: -74.0060},
		Dropoff:     types.Point{Lat: 40.7589, Lng: -73.9851},
		VehicleType: "economy",
		RequestedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// Unit tests: component scoring (pure functions, no ranking involved)
// ---------------------------------------------------------------------------

func TestScoreCandidateWeightedSum(t *testing.T) {
	svc := newTestService(t)
	d := Driver{
		ID:          "d1",
		Rating:      4.0,
		Available:   true,
		VehicleType: "economy",
	}

	got := svc.scoreCandidate(testRequest(), d, 2.0)

	assert.InDelta(t, 0.8, got.Components.Distance, 1e-9)     // 1 - 2/10
	assert.InDelta(t, 0.8, got.Components.Rating, 1e-9)       // 4/5
	assert.InDelta(t, 1.0, got.Components.Availability, 1e-9) // available
	assert.InDelta(t, 1.0, got.Components.VehicleType, 1e-9)  // exact match
	assert.InDelta(t, 0.5, got.Components.Preferences, 1e-9)  // absent prefs fallback

	want := 0.30*0.8 + 0.25*0.8 + 0.20*1.0 + 0.15*1.0 + 0.10*0.5
	assert.InDelta(t, want, got.WeightedScore, 1e-6,
		"weighted score must equal the convex combination of components")
}

func TestDistanceScoreFloorsAtZero(t *testing.T) {
	svc := newTestService(t)
	got := svc.scoreCandidate(testRequest(), Driver{ID: "d1"}, 25.0)
	assert.InDelta(t, 0.0, got.Components.Distance, 1e-9, "beyond 10km scores zero, never negative")
}

func TestVehicleTypeScores(t *testing.T) {
	assert.InDelta(t, 1.0, vehicleTypeScore("economy", "economy"), 1e-9)
	assert.InDelta(t, 0.9, vehicleTypeScore("economy", "comfort"), 1e-9)
	assert.InDelta(t, 1.0, vehicleTypeScore("any", "xl"), 1e-9)
	assert.InDelta(t, 0.5, vehicleTypeScore("rickshaw", "economy"), 1e-9, "unknown pair falls back to 0.5")
	assert.InDelta(t, 0.5, vehicleTypeScore("economy", "hovercraft"), 1e-9)
}

func TestPreferencesScore(t *testing.T) {
	req := map[string]string{"pets": "yes", "music": "off"}
	assert.InDelta(t, 1.0, preferencesScore(req, map[string]string{"pets": "yes", "music": "off"}), 1e-9)
	assert.InDelta(t, 0.5, preferencesScore(req, map[string]string{"pets": "yes", "music": "on"}), 1e-9)
	assert.InDelta(t, 0.5, preferencesScore(nil, map[string]string{"pets": "yes"}), 1e-9, "absent fallback")
	assert.InDelta(t, 0.5, preferencesScore(req, nil), 1e-9, "absent fallback")
}

func TestWeightsValidation(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.Distance = 0.5
	require.Error(t, bad.Validate())

	_, err := NewService(bad, testLogger())
	assert.Error(t, err, "service must refuse weights that do not sum to 1.0")
}

// ---------------------------------------------------------------------------
// Ranking tests
// ---------------------------------------------------------------------------

func TestRankEmptyPoolFails(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Rank(testRequest(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = svc.Rank(testRequest(), []Driver{})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRankRejectsInvalidRequest(t *testing.T) {
	svc := newTestService(t)
	req := testRequest()
	req.Pickup = types.Point{}
	_, err := svc.Rank(req, []Driver{{ID: "d1"}})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestRankOrdersByScoreAndTruncates(t *testing.T) {
	svc := newTestService(t)
	pickup := testRequest().Pickup

	// Distinct distance/rating/availability combinations; the close,
	// well-rated, available driver must win.
	drivers := []Driver{
		{ID: "far_poor", Position: types.Point{Lat: 40.80, Lng: -74.10}, Rating: 3.0, Available: true, VehicleType: "economy"},
		{ID: "close_good", Position: pickup, Rating: 4.8, Available: true, VehicleType: "economy"},
		{ID: "close_busy", Position: pickup, Rating: 4.8, Available: false, VehicleType: "economy"},
		{ID: "mid_ok", Position: types.Point{Lat: 40.7300, Lng: -74.0000}, Rating: 4.0, Available: true, VehicleType: "economy"},
	}

	got, err := svc.Rank(testRequest(), drivers)
	require.NoError(t, err)

	require.Len(t, got.RankedCandidates, 3, "result carries at most the top 3")
	assert.Equal(t, types.ID("close_good"), got.BestMatch.Driver.ID)
	assert.Equal(t, got.RankedCandidates[0], got.BestMatch)
	for i := 1; i < len(got.RankedCandidates); i++ {
		assert.GreaterOrEqual(t,
			got.RankedCandidates[i-1].WeightedScore,
			got.RankedCandidates[i].WeightedScore,
			"ranking must be descending")
	}
	assert.Positive(t, got.AggregateConfidence)
	assert.LessOrEqual(t, got.AggregateConfidence, 0.95)
}

func TestRankIsReproducible(t *testing.T) {
	svc := newTestService(t)
	drivers := []Driver{
		{ID: "a", Position: types.Point{Lat: 40.7200, Lng: -74.0000}, Rating: 4.2, Available: true, VehicleType: "economy"},
		{ID: "b", Position: types.Point{Lat: 40.7300, Lng: -73.9900}, Rating: 4.9, Available: true, VehicleType: "comfort"},
		{ID: "c", Position: types.Point{Lat: 40.7150, Lng: -74.0100}, Rating: 3.8, Available: false, VehicleType: "economy"},
	}

	first, err := svc.Rank(testRequest(), drivers)
	require.NoError(t, err)
	second, err := svc.Rank(testRequest(), drivers)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce identical rankings")
}

func TestSortCandidatesTieBreakByDistance(t *testing.T) {
	// Equal weighted scores, different distances: the closer driver ranks first.
	candidates := []Candidate{
		{Driver: Driver{ID: "farther"}, DistanceKm: 2.5, WeightedScore: 0.45},
		{Driver: Driver{ID: "closer"}, DistanceKm: 0.0, WeightedScore: 0.45},
	}
	sortCandidates(candidates)

	assert.Equal(t, types.ID("closer"), candidates[0].Driver.ID)
	assert.Equal(t, types.ID("farther"), candidates[1].Driver.ID)
}

func TestSortCandidatesTieBreakByID(t *testing.T) {
	// Same score, same distance: stable ID order decides.
	candidates := []Candidate{
		{Driver: Driver{ID: "zeta"}, DistanceKm: 1.0, WeightedScore: 0.45},
		{Driver: Driver{ID: "alpha"}, DistanceKm: 1.0, WeightedScore: 0.45},
	}
	sortCandidates(candidates)

	assert.Equal(t, types.ID("alpha"), candidates[0].Driver.ID)
}

func TestAggregateConfidenceIsMeanOfScores(t *testing.T) {
	candidates := []Candidate{
		{WeightedScore: 0.9},
		{WeightedScore: 0.6},
		{WeightedScore: 0.3},
	}
	assert.InDelta(t, 0.6, aggregateConfidence(candidates), 1e-9)
}
