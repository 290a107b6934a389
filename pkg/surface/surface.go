// Package surface defines output rendering for health score results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// Renderer produces formatted output from a health score result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *health.Result) error
}

// factorOrder fixes the display order of factor rows.
var factorOrder = []string{
	health.KeyLoginFrequency,
	health.KeyFeatureAdoption,
	health.KeySupportLoad,
	health.KeyInvoiceTimeliness,
	health.KeyAPITrend,
}

var factorNames = map[string]string{
	health.KeyLoginFrequency:    "Login frequency",
	health.KeyFeatureAdoption:   "Feature adoption",
	health.KeySupportLoad:       "Support load",
	health.KeyInvoiceTimeliness: "Invoice timeliness",
	health.KeyAPITrend:          "API usage trend",
}
