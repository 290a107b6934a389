package surface

import (
	"encoding/json"
	"io"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// JSONRenderer marshals a health result to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *health.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
