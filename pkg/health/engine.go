package health

import (
	"fmt"
	"math"
)

// Factor is the interface all factor scorers implement.
type Factor interface {
	// Key returns the machine-readable factor identifier.
	Key() string
	// Name returns the human-readable factor name.
	Name() string
	// Evaluate computes the factor score in [0, 100] for a valid snapshot.
	Evaluate(snap *Snapshot) float64
}

// InvalidInputError reports a snapshot field that violates the caller
// contract. The engine performs no computation on invalid input.
type InvalidInputError struct {
	Field string
	Value int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %d, must be >= 0", e.Field, e.Value)
}

// Engine runs all configured factors against a snapshot and aggregates them
// into a Result. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	factors []Factor
	weights map[string]float64
}

// NewEngine creates a scoring engine from the given configuration.
// Configuration invariants are checked here, not per call.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	weights := make(map[string]float64, len(cfg.Weights))
	for k, w := range cfg.Weights {
		weights[k] = w
	}

	return &Engine{
		factors: defaultFactors(cfg),
		weights: weights,
	}, nil
}

// Score evaluates all factors and produces a complete Result.
// It validates the snapshot first and returns an *InvalidInputError without
// computing anything if a count is negative.
func (e *Engine) Score(snap *Snapshot) (*Result, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}

	result := &Result{
		Factors: make(map[string]float64, len(e.factors)),
		Weights: make(map[string]float64, len(e.weights)),
	}
	for k, w := range e.weights {
		result.Weights[k] = w
	}

	var total float64
	for _, f := range e.factors {
		s := f.Evaluate(snap)
		result.Factors[f.Key()] = s
		total += e.weights[f.Key()] * s
	}

	// The weighted sum of [0,100] scores under weights summing to 1 is
	// already bounded; rounding is for display stability only.
	result.FinalScore = round2(total)
	result.Status = StatusFromScore(result.FinalScore)

	return result, nil
}

func validateSnapshot(snap *Snapshot) error {
	checks := []struct {
		field string
		value int
	}{
		{"logins_last_30d", snap.Logins30d},
		{"distinct_features_used_90d", snap.DistinctFeatures90d},
		{"support_tickets_90d", snap.Tickets90d},
		{"api_calls_current_30d", snap.APICallsCurr30d},
		{"api_calls_previous_30d", snap.APICallsPrev30d},
	}
	for _, c := range checks {
		if c.value < 0 {
			return &InvalidInputError{Field: c.field, Value: c.value}
		}
	}
	return nil
}

// pct converts a 0..1 ratio to 0..100 with clamping.
func pct(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 100
	}
	return x * 100
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
