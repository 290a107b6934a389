package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// ActivitySnapshot assembles the scoring engine input for one customer as of
// a reference time. All windows trail asOf: logins and the current API window
// cover 30 days, the previous API window the 30 days before that, features
// and tickets 90 days. Invoices are read in full, oldest first.
func (s *Store) ActivitySnapshot(ctx context.Context, customerID string, asOf time.Time) (*health.Snapshot, error) {
	d30 := asOf.AddDate(0, 0, -30)
	d60 := asOf.AddDate(0, 0, -60)
	d90 := asOf.AddDate(0, 0, -90)

	snap := &health.Snapshot{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events
		 WHERE customer_id = $1 AND type = $2 AND ts >= $3 AND ts <= $4`,
		customerID, EventLogin, d30, asOf,
	).Scan(&snap.Logins30d)
	if err != nil {
		return nil, fmt.Errorf("count logins: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT feature_name) FROM feature_usage
		 WHERE customer_id = $1 AND used_at >= $2 AND used_at <= $3`,
		customerID, d90, asOf,
	).Scan(&snap.DistinctFeatures90d)
	if err != nil {
		return nil, fmt.Errorf("count distinct features: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM support_tickets
		 WHERE customer_id = $1 AND created_at >= $2 AND created_at <= $3`,
		customerID, d90, asOf,
	).Scan(&snap.Tickets90d)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events
		 WHERE customer_id = $1 AND type = $2 AND ts >= $3 AND ts <= $4`,
		customerID, EventAPICall, d30, asOf,
	).Scan(&snap.APICallsCurr30d)
	if err != nil {
		return nil, fmt.Errorf("count current api calls: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events
		 WHERE customer_id = $1 AND type = $2 AND ts >= $3 AND ts < $4`,
		customerID, EventAPICall, d60, d30,
	).Scan(&snap.APICallsPrev30d)
	if err != nil {
		return nil, fmt.Errorf("count previous api calls: %w", err)
	}

	// On-time means paid_date <= due_date, no grace period. Unpaid invoices
	// count as not on time.
	rows, err := s.db.QueryContext(ctx,
		`SELECT paid_date IS NOT NULL AND paid_date <= due_date
		 FROM invoices WHERE customer_id = $1 ORDER BY due_date`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var onTime bool
		if err := rows.Scan(&onTime); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		snap.Invoices = append(snap.Invoices, health.Invoice{PaidOnTime: onTime})
	}
	return snap, rows.Err()
}
