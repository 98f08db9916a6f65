// README: Fraud risk assessment result and user signal types.
package fraud

import (
	"time"

	"pulse/internal/types"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Assessment is the bucketed risk verdict for a ride request.
// IsFraudulent holds exactly when RiskLevel is high.
type Assessment struct {
	ID           types.ID  `json:"id"`
	RiskScore    float64   `json:"risk_score"`
	RiskFactors  []string  `json:"risk_factors"`
	RiskLevel    RiskLevel `json:"risk_level"`
	IsFraudulent bool      `json:"is_fraudulent"`
	Confidence   float64   `json:"confidence"`
	AssessedAt   time.Time `json:"assessed_at"`
}

// UserData carries the account signals the rule set inspects. Pointer fields
// are optional: nil means the upstream system could not supply the signal, in
// which case the depending rule fails open (not triggered) and the reported
// confidence drops.
type UserData struct {
	AccountAgeDays         int      `json:"account_age_days"`
	CompletedRides         int      `json:"completed_rides"`
	FareChangesLastHour    *int     `json:"fare_changes_last_hour,omitempty"`
	CancellationsLastDay   *int     `json:"cancellations_last_day,omitempty"`
	PaymentFailuresLastDay *int     `json:"payment_failures_last_day,omitempty"`
	NewPaymentMethod       *bool    `json:"new_payment_method,omitempty"`
	DevicesLastWeek        *int     `json:"devices_last_week,omitempty"`
	LocationAccuracyM      *float64 `json:"location_accuracy_m,omitempty"`
}
