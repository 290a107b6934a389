package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// fakeStore serves canned customers and snapshots without Postgres.
type fakeStore struct {
	customers map[string]store.Customer
	snapshots map[string]*health.Snapshot
	ingested  []string
}

func (f *fakeStore) ListCustomers(ctx context.Context) ([]store.Customer, error) {
	var out []store.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetCustomer(ctx context.Context, id string) (*store.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, fmt.Errorf("get customer %s: no rows", id)
	}
	return &c, nil
}

func (f *fakeStore) CreateCustomer(ctx context.Context, name, segment string) (*store.Customer, error) {
	c := store.Customer{ID: "new-id", Name: name, Segment: segment, CreatedAt: time.Now()}
	f.customers[c.ID] = c
	return &c, nil
}

func (f *fakeStore) IngestEvent(ctx context.Context, customerID, eventType string, ts time.Time, meta map[string]any) error {
	switch eventType {
	case store.EventLogin, store.EventAPICall, store.EventFeatureUsed,
		store.EventTicketOpened, store.EventInvoicePaid:
		f.ingested = append(f.ingested, eventType)
		return nil
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}
}

func (f *fakeStore) ActivitySnapshot(ctx context.Context, customerID string, asOf time.Time) (*health.Snapshot, error) {
	snap, ok := f.snapshots[customerID]
	if !ok {
		return &health.Snapshot{}, nil
	}
	return snap, nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeStore) {
	t.Helper()
	engine, err := health.NewEngine(health.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	fs := &fakeStore{
		customers: map[string]store.Customer{
			"c1": {ID: "c1", Name: "Acme Corp", Segment: "enterprise", CreatedAt: time.Now()},
			"c2": {ID: "c2", Name: "Bolt Ltd", Segment: "startup", CreatedAt: time.Now()},
		},
		snapshots: map[string]*health.Snapshot{
			"c1": { // strong all-around customer
				Logins30d:           20,
				DistinctFeatures90d: 5,
				Tickets90d:          0,
				Invoices:            []health.Invoice{{PaidOnTime: true}, {PaidOnTime: true}},
				APICallsCurr30d:     200,
				APICallsPrev30d:     100,
			},
			"c2": {}, // no activity at all
		},
	}
	h := NewHandler(fs, engine, nil)
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h, fs
}

func serve(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestListCustomers(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "GET", "/api/customers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got []customerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestCustomerHealthPerfectCustomer(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "GET", "/api/customers/c1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var got healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Acme Corp" {
		t.Errorf("Name = %q, want %q", got.Name, "Acme Corp")
	}
	// Every factor maxed: 20/20 logins, 5/5 features, 0 tickets, all
	// invoices on time, API calls doubled.
	if got.FinalScore != 100 {
		t.Errorf("FinalScore = %f, want 100", got.FinalScore)
	}
	if got.Status != string(health.StatusHealthy) {
		t.Errorf("Status = %q, want healthy", got.Status)
	}
	if len(got.Factors) != 5 {
		t.Errorf("factors = %d, want 5", len(got.Factors))
	}
	if got.Weights[health.KeyLoginFrequency] != 0.25 {
		t.Errorf("login weight = %f, want 0.25", got.Weights[health.KeyLoginFrequency])
	}
}

func TestCustomerHealthNoActivity(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "GET", "/api/customers/c2/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.FinalScore != 35 {
		t.Errorf("FinalScore = %f, want 35", got.FinalScore)
	}
	if got.Factors[health.KeyInvoiceTimeliness] != 50 {
		t.Errorf("invoice factor = %f, want neutral 50", got.Factors[health.KeyInvoiceTimeliness])
	}
}

func TestCustomerHealthNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "GET", "/api/customers/nope/health", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestIngestEvent(t *testing.T) {
	h, fs := newTestHandler(t)
	w := serve(h, "POST", "/api/customers/c1/events",
		`{"type":"login","timestamp":"2025-05-30T10:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if len(fs.ingested) != 1 || fs.ingested[0] != store.EventLogin {
		t.Errorf("ingested = %v, want [login]", fs.ingested)
	}
}

func TestIngestEventValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown customer", "/api/customers/nope/events", `{"type":"login"}`, http.StatusNotFound},
		{"malformed body", "/api/customers/c1/events", `{`, http.StatusBadRequest},
		{"bad timestamp", "/api/customers/c1/events", `{"type":"login","timestamp":"yesterday"}`, http.StatusBadRequest},
		{"unknown event type", "/api/customers/c1/events", `{"type":"telepathy"}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			w := serve(h, "POST", tc.path, tc.body)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestCreateCustomer(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "POST", "/api/customers", `{"name":"New Co"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var got customerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Segment != "SMB" {
		t.Errorf("Segment = %q, want default SMB", got.Segment)
	}

	w = serve(h, "POST", "/api/customers", `{"segment":"enterprise"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status without name = %d, want 400", w.Code)
	}
}

func TestOverview(t *testing.T) {
	h, _ := newTestHandler(t)
	w := serve(h, "GET", "/api/overview", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got overviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CustomerCount != 2 {
		t.Errorf("CustomerCount = %d, want 2", got.CustomerCount)
	}
	// c1 scores 100 (healthy), c2 scores 35 (churn risk).
	if got.StatusCounts[string(health.StatusHealthy)] != 1 {
		t.Errorf("healthy count = %d, want 1", got.StatusCounts[string(health.StatusHealthy)])
	}
	if got.StatusCounts[string(health.StatusChurnRisk)] != 1 {
		t.Errorf("churn risk count = %d, want 1", got.StatusCounts[string(health.StatusChurnRisk)])
	}
	if got.AverageScore != 67.5 {
		t.Errorf("AverageScore = %f, want 67.5", got.AverageScore)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	h, _ := newTestHandler(t)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	protected := APIKeyAuth("sekrit")(mux)

	// Reads pass without a key.
	req := httptest.NewRequest("GET", "/api/customers", nil)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", w.Code)
	}

	// Writes without the key are rejected.
	req = httptest.NewRequest("POST", "/api/customers", strings.NewReader(`{"name":"X"}`))
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("POST without key status = %d, want 401", w.Code)
	}

	// Writes with the key pass.
	req = httptest.NewRequest("POST", "/api/customers", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("X-API-Key", "sekrit")
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("POST with key status = %d, want 201", w.Code)
	}
}
