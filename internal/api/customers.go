package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pulsecheck/pulsecheck/internal/store"
)

type customerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Segment   string `json:"segment"`
	CreatedAt string `json:"created_at"`
}

type healthResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Factors    map[string]float64 `json:"factors"`
	Weights    map[string]float64 `json:"weights"`
	FinalScore float64            `json:"final_score"`
	Status     string             `json:"status"`
	AsOf       string             `json:"as_of"`
}

type createCustomerRequest struct {
	Name    string `json:"name"`
	Segment string `json:"segment"`
}

type eventRequest struct {
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"` // RFC3339; empty means now
	Meta      map[string]any `json:"meta"`
}

func customerToResponse(c *store.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Segment:   c.Segment,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	result := make([]customerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, customerToResponse(&customers[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Segment == "" {
		req.Segment = "SMB"
	}

	c, err := h.store.CreateCustomer(r.Context(), req.Name, req.Segment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}
	writeJSON(w, http.StatusCreated, customerToResponse(c))
}

// handleCustomerHealth computes the derived health breakdown on demand.
// The score is never stored; it always reflects current activity.
func (h *Handler) handleCustomerHealth(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerID")

	customer, err := h.store.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	asOf := h.now().UTC()
	snap, err := h.store.ActivitySnapshot(r.Context(), customerID, asOf)
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

	writeJSON(w, http.StatusOK, healthResponse{
		ID:         customer.ID,
		Name:       customer.Name,
		Factors:    result.Factors,
		Weights:    result.Weights,
		FinalScore: result.FinalScore,
		Status:     string(result.Status),
		AsOf:       asOf.Format(time.RFC3339),
	})
}

func (h *Handler) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerID")

	if _, err := h.store.GetCustomer(r.Context(), customerID); err != nil {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ts := h.now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, "timestamp must be RFC3339")
			return
		}
		ts = parsed
	}

	if err := h.store.IngestEvent(r.Context(), customerID, req.Type, ts, req.Meta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.metrics != nil {
		h.metrics.EventsIngested.WithLabelValues(req.Type).Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}
