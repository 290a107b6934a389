// Package api implements the Pulsecheck REST API: customer listings, derived
// health breakdowns, activity ingest, and the dashboard aggregates.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pulsecheck/pulsecheck/internal/metrics"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// CustomerStore is the persistence surface the API needs. *store.Store
// satisfies it; tests substitute an in-memory fake.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]store.Customer, error)
	GetCustomer(ctx context.Context, id string) (*store.Customer, error)
	CreateCustomer(ctx context.Context, name, segment string) (*store.Customer, error)
	IngestEvent(ctx context.Context, customerID, eventType string, ts time.Time, meta map[string]any) error
	ActivitySnapshot(ctx context.Context, customerID string, asOf time.Time) (*health.Snapshot, error)
}

// Handler is the top-level API handler.
type Handler struct {
	store   CustomerStore
	engine  *health.Engine
	metrics *metrics.Metrics
	// now is the reference-time source; overridable in tests.
	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(st CustomerStore, engine *health.Engine, m *metrics.Metrics) *Handler {
	return &Handler{
		store:   st,
		engine:  engine,
		metrics: m,
		now:     time.Now,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected when an API key is configured)
	mux.HandleFunc("POST /api/customers", h.instrument("create_customer", h.handleCreateCustomer))
	mux.HandleFunc("POST /api/customers/{customerID}/events", h.instrument("ingest_event", h.handleIngestEvent))

	// Read endpoints
	mux.HandleFunc("GET /api/customers", h.instrument("list_customers", h.handleListCustomers))
	mux.HandleFunc("GET /api/customers/{customerID}/health", h.instrument("customer_health", h.handleCustomerHealth))
	mux.HandleFunc("GET /api/overview", h.instrument("overview", h.handleOverview))

	// Dashboard
	mux.HandleFunc("GET /{$}", h.handleDashboard)
	mux.HandleFunc("GET /dashboard", h.handleDashboard)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
