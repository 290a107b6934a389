package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// TerminalRenderer renders a health result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func statusColor(status health.Status) string {
	if noColor() {
		return ""
	}
	switch status {
	case health.StatusHealthy:
		return colorGreen
	case health.StatusAtRisk:
		return colorYellow
	case health.StatusChurnRisk:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *health.Result) error {
	sc := statusColor(result.Status)

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Pulsecheck: Score %.2f — %s",
			result.FinalScore, colored(string(result.Status), sc))))

	// Factor breakdown
	fmt.Fprintln(w, "Factors:")
	for _, key := range factorOrder {
		score, ok := result.Factors[key]
		if !ok {
			continue
		}
		bar := scoreBar(score)
		fmt.Fprintf(w, "  %-20s %6.2f  %s  %s\n",
			factorNames[key], score, bar,
			dim(fmt.Sprintf("weight %.2f", result.Weights[key])))
	}
	fmt.Fprintln(w)

	return nil
}

// scoreBar draws a 10-cell bar proportional to a score in [0, 100].
func scoreBar(score float64) string {
	filled := int(score / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
