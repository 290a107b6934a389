// Package health implements the Pulsecheck customer health scoring engine.
// It turns a point-in-time snapshot of raw activity counts into five
// normalized factor scores and one weighted health score.
package health

// Factor keys used in results, weights, and API payloads.
const (
	KeyLoginFrequency    = "login_frequency"
	KeyFeatureAdoption   = "feature_adoption"
	KeySupportLoad       = "support_load"
	KeyInvoiceTimeliness = "invoice_timeliness"
	KeyAPITrend          = "api_trend"
)

// neutralScore is returned when a factor has no evidence to judge (e.g. no
// billing history yet). Absence of data is not poor performance.
const neutralScore = 50.0

// Snapshot is the complete set of raw activity counts for one customer as of
// a reference time. Immutable for the duration of one computation.
type Snapshot struct {
	// Logins30d counts login events in the trailing 30-day window.
	Logins30d int `json:"logins_last_30d"`
	// DistinctFeatures90d counts distinct key features used in the trailing
	// 90-day window. Values above the catalog size are clamped when scoring.
	DistinctFeatures90d int `json:"distinct_features_used_90d"`
	// Tickets90d counts support tickets opened in the trailing 90-day window.
	Tickets90d int `json:"support_tickets_90d"`
	// Invoices holds recent invoice records, oldest first. May be empty.
	Invoices []Invoice `json:"invoices_recent"`
	// APICallsCurr30d and APICallsPrev30d count API calls in two adjacent,
	// non-overlapping 30-day windows.
	APICallsCurr30d int `json:"api_calls_current_30d"`
	APICallsPrev30d int `json:"api_calls_previous_30d"`
}

// Invoice is a single billing record reduced to what scoring needs.
type Invoice struct {
	PaidOnTime bool `json:"paid_on_time"`
}

// Result is the complete output of scoring one snapshot.
// Immutable once computed.
type Result struct {
	// Factors maps factor key to its score in [0, 100].
	Factors map[string]float64 `json:"factors"`
	// Weights maps factor key to the weight used in aggregation.
	Weights map[string]float64 `json:"weights"`
	// FinalScore is the weighted sum of factor scores, rounded to 2 decimals.
	FinalScore float64 `json:"final_score"`
	// Status is the band classification of FinalScore.
	Status Status `json:"status"`
}

// Status classifies a final score into a retention-risk band.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusAtRisk    Status = "at_risk"
	StatusChurnRisk Status = "churn_risk"
)

// StatusFromScore maps a final score to a risk band.
func StatusFromScore(score float64) Status {
	switch {
	case score >= 70:
		return StatusHealthy
	case score >= 40:
		return StatusAtRisk
	default:
		return StatusChurnRisk
	}
}
