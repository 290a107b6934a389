package health

import (
	"fmt"
	"math"
)

// Config holds the tunable scoring parameters. Zero values are invalid;
// start from DefaultConfig and override.
type Config struct {
	// LoginTarget is the 30-day login count at which the login factor
	// saturates at 100.
	LoginTarget int
	// TotalKeyFeatures is the size of the key-feature catalog.
	TotalKeyFeatures int
	// MaxTickets is the 90-day ticket count at which the support factor
	// bottoms out at 0. A saturation threshold, not a cap on valid input.
	MaxTickets int
	// Weights maps factor key to aggregation weight. Must cover exactly the
	// five factor keys and sum to 1.0.
	Weights map[string]float64
}

// DefaultConfig returns the canonical scoring configuration.
//
// Weights reflect typical SaaS retention drivers: engagement and adoption
// highest, support pain and billing reliability second, API momentum last
// (powerful when present but not every customer integrates).
func DefaultConfig() Config {
	return Config{
		LoginTarget:      20,
		TotalKeyFeatures: 5,
		MaxTickets:       10,
		Weights: map[string]float64{
			KeyLoginFrequency:    0.25,
			KeyFeatureAdoption:   0.25,
			KeySupportLoad:       0.20,
			KeyInvoiceTimeliness: 0.20,
			KeyAPITrend:          0.10,
		},
	}
}

// validate checks the configuration invariants once, at engine construction.
func (c Config) validate() error {
	if c.LoginTarget <= 0 {
		return fmt.Errorf("login target must be > 0, got %d", c.LoginTarget)
	}
	if c.TotalKeyFeatures <= 0 {
		return fmt.Errorf("total key features must be > 0, got %d", c.TotalKeyFeatures)
	}
	if c.MaxTickets <= 0 {
		return fmt.Errorf("max tickets must be > 0, got %d", c.MaxTickets)
	}

	keys := []string{
		KeyLoginFrequency, KeyFeatureAdoption, KeySupportLoad,
		KeyInvoiceTimeliness, KeyAPITrend,
	}
	if len(c.Weights) != len(keys) {
		return fmt.Errorf("weights must cover exactly %d factors, got %d", len(keys), len(c.Weights))
	}
	var sum float64
	for _, k := range keys {
		w, ok := c.Weights[k]
		if !ok {
			return fmt.Errorf("missing weight for factor %q", k)
		}
		if w < 0 {
			return fmt.Errorf("weight for factor %q must be >= 0, got %f", k, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}
