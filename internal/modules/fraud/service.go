// README: Fraud scorer; additive rule weights, clamped and bucketed.
package fraud

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pulse/internal/types"
)

const (
	highThreshold   = 0.8
	mediumThreshold = 0.6

	maxConfidence = 0.95
	minConfidence = 0.20
	// confidencePenalty is subtracted per rule whose input data was
	// unavailable: the verdict stands, but we say so honestly.
	confidencePenalty = 0.10
)

type Service struct {
	rules  []rule
	logger *logrus.Logger
}

func NewService(logger *logrus.Logger) *Service {
	return &Service{rules: defaultRules(), logger: logger}
}

// Assess runs the fixed rule set against a ride request. The only error is
// types.ErrInvalidRequest for malformed input; unavailable rule data fails
// open so screening never blocks dispatch.
func (s *Service) Assess(req types.RideRequest, user UserData) (Assessment, error) {
	if err := req.Validate(); err != nil {
		return Assessment{}, err
	}

	score := 0.0
	skipped := 0
	factors := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		triggered, available := r.check(req, user)
		if !available {
			skipped++
			continue
		}
		if triggered {
			score += r.weight
			factors = append(factors, r.name)
		}
	}

	// Clamp before bucketing so stacked rules cannot overshoot the scale.
	score = clamp01(score)
	level := bucketLevel(score)

	if level == RiskHigh {
		s.logger.WithFields(logrus.Fields{
			"rider_id": req.RiderID,
			"score":    score,
			"factors":  factors,
		}).Warn("high fraud risk detected")
	}

	return Assessment{
		ID:           types.ID(uuid.NewString()),
		RiskScore:    score,
		RiskFactors:  factors,
		RiskLevel:    level,
		IsFraudulent: level == RiskHigh,
		Confidence:   confidence(score, skipped),
		AssessedAt:   time.Now().UTC(),
	}, nil
}

func bucketLevel(score float64) RiskLevel {
	switch {
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// confidence grows monotonically with the score, capped at 0.95, and drops
// for every rule that could not be evaluated.
func confidence(score float64, skipped int) float64 {
	c := 0.5 + score/2
	if c > maxConfidence {
		c = maxConfidence
	}
	c -= float64(skipped) * confidencePenalty
	if c < minConfidence {
		c = minConfidence
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
