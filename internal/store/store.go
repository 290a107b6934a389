// Package store manages customer state in Postgres: customers and the
// activity rows (events, invoices, support tickets, feature usage) the
// scoring engine reads.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Event types accepted by the ingest pipeline.
const (
	EventLogin        = "login"
	EventAPICall      = "api_call"
	EventFeatureUsed  = "feature_used"
	EventTicketOpened = "ticket_opened"
	EventInvoicePaid  = "invoice_paid"
)

// Store provides customer and activity persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// Customer is the core account entity.
type Customer struct {
	ID        string
	Name      string
	Segment   string
	CreatedAt time.Time
}

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateCustomer inserts a customer and returns the stored record.
func (s *Store) CreateCustomer(ctx context.Context, name, segment string) (*Customer, error) {
	c := &Customer{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, segment)
		 VALUES ($1, $2)
		 RETURNING id, name, segment, created_at`,
		name, segment,
	).Scan(&c.ID, &c.Name, &c.Segment, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create customer %s: %w", name, err)
	}
	return c, nil
}

// GetCustomer retrieves a customer by ID.
func (s *Store) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c := &Customer{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, segment, created_at FROM customers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Segment, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, segment, created_at FROM customers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Segment, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// CustomerCount returns the number of customers.
func (s *Store) CustomerCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// InsertEvent records a raw login or api_call event.
func (s *Store) InsertEvent(ctx context.Context, customerID, eventType string, ts time.Time, meta map[string]any) error {
	var metaJSON any
	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal event meta: %w", err)
		}
		metaJSON = b
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (customer_id, type, ts, meta) VALUES ($1, $2, $3, $4)`,
		customerID, eventType, ts, metaJSON,
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", eventType, err)
	}
	return nil
}

// InsertFeatureUsage records one use of a named feature.
func (s *Store) InsertFeatureUsage(ctx context.Context, customerID, featureName string, usedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feature_usage (customer_id, feature_name, used_at) VALUES ($1, $2, $3)`,
		customerID, featureName, usedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feature usage %s: %w", featureName, err)
	}
	return nil
}

// InsertTicket records a support ticket.
func (s *Store) InsertTicket(ctx context.Context, customerID, status string, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO support_tickets (customer_id, status, created_at) VALUES ($1, $2, $3)`,
		customerID, status, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// InsertInvoice records a billing row. paidDate may be nil for unpaid invoices.
func (s *Store) InsertInvoice(ctx context.Context, customerID string, dueDate time.Time, paidDate *time.Time, amount float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (customer_id, due_date, paid_date, amount) VALUES ($1, $2, $3, $4)`,
		customerID, dueDate, paidDate, amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// IngestEvent routes one ingested activity event to the table the matching
// health factor reads. Events landing in the wrong table would never move a
// score, so routing lives here rather than in each caller.
func (s *Store) IngestEvent(ctx context.Context, customerID, eventType string, ts time.Time, meta map[string]any) error {
	switch eventType {
	case EventLogin, EventAPICall:
		return s.InsertEvent(ctx, customerID, eventType, ts, meta)

	case EventFeatureUsed:
		name, _ := meta["feature_name"].(string)
		if name == "" {
			return fmt.Errorf("feature_used event requires meta.feature_name")
		}
		return s.InsertFeatureUsage(ctx, customerID, name, ts)

	case EventTicketOpened:
		status, _ := meta["status"].(string)
		if status == "" {
			status = "open"
		}
		return s.InsertTicket(ctx, customerID, status, ts)

	case EventInvoicePaid:
		amount, _ := meta["amount"].(float64)
		due := ts
		if raw, ok := meta["due_date"].(string); ok {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("invoice_paid event: parse due_date: %w", err)
			}
			due = parsed
		}
		paid := ts
		return s.InsertInvoice(ctx, customerID, due, &paid, amount)

	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}
}

// Reset truncates all activity and customer tables. Dev/seeding only.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`TRUNCATE events, invoices, support_tickets, feature_usage, customers`,
	)
	if err != nil {
		return fmt.Errorf("reset tables: %w", err)
	}
	return nil
}
