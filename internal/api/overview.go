package api

import (
	"math"
	"net/http"
	"time"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

type overviewCustomer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Segment string  `json:"segment"`
	Score   float64 `json:"score"`
	Status  string  `json:"status"`
}

type overviewResponse struct {
	CustomerCount int                `json:"customer_count"`
	AverageScore  float64            `json:"average_score"`
	StatusCounts  map[string]int     `json:"status_counts"`
	Customers     []overviewCustomer `json:"customers"`
	AsOf          string             `json:"as_of"`
}

// handleOverview scores every customer as of now and returns the aggregates
// the dashboard renders. Demo-scale: one snapshot per customer per call.
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	asOf := h.now().UTC()
	resp := overviewResponse{
		StatusCounts: map[string]int{
			string(health.StatusHealthy):   0,
			string(health.StatusAtRisk):    0,
			string(health.StatusChurnRisk): 0,
		},
		Customers: make([]overviewCustomer, 0, len(customers)),
		AsOf:      asOf.Format(time.RFC3339),
	}

	var total float64
	for i := range customers {
		c := &customers[i]
		snap, err := h.store.ActivitySnapshot(r.Context(), c.ID, asOf)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load activity")
			return
		}
		result, err := h.engine.Score(snap)
		if err != nil {
			if h.metrics != nil {
				h.metrics.ScoringErrors.Inc()
			}
			writeError(w, http.StatusInternalServerError, "failed to compute health score")
			return
		}
		if h.metrics != nil {
			h.metrics.ScoresComputed.Inc()
		}

		total += result.FinalScore
		resp.StatusCounts[string(result.Status)]++
		resp.Customers = append(resp.Customers, overviewCustomer{
			ID:      c.ID,
			Name:    c.Name,
			Segment: c.Segment,
			Score:   result.FinalScore,
			Status:  string(result.Status),
		})
	}

	resp.CustomerCount = len(customers)
	if len(customers) > 0 {
		resp.AverageScore = round2(total / float64(len(customers)))
	}
	writeJSON(w, http.StatusOK, resp)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
