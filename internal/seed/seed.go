// Package seed populates the database with realistic synthetic activity so
// the health factors have meaningful inputs across healthy, at-risk, and
// churn-risk customers.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pulsecheck/pulsecheck/internal/store"
)

// KeyFeatures is the fixed catalog of key product features. The feature
// adoption factor counts distinct names from this list.
var KeyFeatures = []string{"Billing", "Analytics", "Automation", "Integrations", "Collaboration"}

var segments = []string{"enterprise", "SMB", "startup"}

// Activity bounds per customer, mirroring the documented data shape.
const (
	maxTicketsPer90d = 10
	invoiceMonths    = 3
)

// Options controls a seeding run.
type Options struct {
	Customers int
	// Reset truncates all tables first. Without it, a non-empty database is
	// left untouched so a stable dataset survives re-runs.
	Reset bool
	// Seed fixes the RNG for reproducible datasets; 0 seeds from the clock.
	Seed int64
}

// Run generates and inserts the synthetic dataset.
func Run(ctx context.Context, st *store.Store, opts Options) error {
	if opts.Customers < 1 {
		opts.Customers = 60
	}

	seedVal := opts.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedVal))

	if opts.Reset {
		if err := st.Reset(ctx); err != nil {
			return err
		}
	} else {
		existing, err := st.CustomerCount(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("database already has %d customers; use --reset to rebuild", existing)
		}
	}

	now := time.Now().UTC()
	bar := progressbar.Default(int64(opts.Customers), "seeding customers")

	for i := 0; i < opts.Customers; i++ {
		plan := planCustomer(rng, now)

		c, err := st.CreateCustomer(ctx, plan.Name, plan.Segment)
		if err != nil {
			return err
		}
		if err := applyPlan(ctx, st, c.ID, plan); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
		_ = bar.Add(1)
	}

	return nil
}

func applyPlan(ctx context.Context, st *store.Store, customerID string, plan customerPlan) error {
	for _, ev := range plan.Events {
		if err := st.InsertEvent(ctx, customerID, ev.Type, ev.At, ev.Meta); err != nil {
			return err
		}
	}
	for _, fu := range plan.Features {
		if err := st.InsertFeatureUsage(ctx, customerID, fu.Name, fu.At); err != nil {
			return err
		}
	}
	for _, tk := range plan.Tickets {
		if err := st.InsertTicket(ctx, customerID, tk.Status, tk.At); err != nil {
			return err
		}
	}
	for _, inv := range plan.Invoices {
		if err := st.InsertInvoice(ctx, customerID, inv.Due, inv.Paid, inv.Amount); err != nil {
			return err
		}
	}
	return nil
}
