package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// SnapshotSource is the slice of the store the report run needs.
type SnapshotSource interface {
	ListCustomers(ctx context.Context) ([]store.Customer, error)
	ActivitySnapshot(ctx context.Context, customerID string, asOf time.Time) (*health.Snapshot, error)
}

// Entry is one customer's line in a score report.
type Entry struct {
	CustomerID string             `json:"customer_id"`
	Name       string             `json:"name"`
	Segment    string             `json:"segment"`
	Factors    map[string]float64 `json:"factors"`
	FinalScore float64            `json:"final_score"`
	Status     string             `json:"status"`
}

// Report is a full-portfolio score run, the unit archived to blob storage.
type Report struct {
	ID            string         `json:"id"`
	GeneratedAt   string         `json:"generated_at"`
	AsOf          string         `json:"as_of"`
	CustomerCount int            `json:"customer_count"`
	AverageScore  float64        `json:"average_score"`
	StatusCounts  map[string]int `json:"status_counts"`
	Entries       []Entry        `json:"entries"`
}

// Service runs score reports and archives them.
type Service struct {
	source  SnapshotSource
	engine  *health.Engine
	storage StorageClient
	now     func() time.Time
}

// NewService creates a report Service.
func NewService(source SnapshotSource, engine *health.Engine, storage StorageClient) *Service {
	return &Service{
		source:  source,
		engine:  engine,
		storage: storage,
		now:     time.Now,
	}
}

// Run scores every customer as of asOf, archives the report, and returns it.
// A zero asOf means now.
func (s *Service) Run(ctx context.Context, asOf time.Time) (*Report, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = asOf.UTC()

	customers, err := s.source.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	rep := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		AsOf:        asOf.Format(time.RFC3339),
		StatusCounts: map[string]int{
			string(health.StatusHealthy):   0,
			string(health.StatusAtRisk):    0,
			string(health.StatusChurnRisk): 0,
		},
		Entries: make([]Entry, 0, len(customers)),
	}

	var total float64
	for i := range customers {
		c := &customers[i]
		snap, err := s.source.ActivitySnapshot(ctx, c.ID, asOf)
		if err != nil {
			return nil, fmt.Errorf("snapshot for %s: %w", c.ID, err)
		}
		result, err := s.engine.Score(snap)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", c.ID, err)
		}

		total += result.FinalScore
		rep.StatusCounts[string(result.Status)]++
		rep.Entries = append(rep.Entries, Entry{
			CustomerID: c.ID,
			Name:       c.Name,
			Segment:    c.Segment,
			Factors:    result.Factors,
			FinalScore: result.FinalScore,
			Status:     string(result.Status),
		})
	}

	rep.CustomerCount = len(customers)
	if len(customers) > 0 {
		rep.AverageScore = total / float64(len(customers))
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := s.storage.PutReport(ctx, rep.ID, data); err != nil {
		return nil, fmt.Errorf("archive report %s: %w", rep.ID, err)
	}

	return rep, nil
}
