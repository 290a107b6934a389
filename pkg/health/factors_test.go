package health_test

import (
	"math"
	"testing"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

func TestLoginFrequencyFactor(t *testing.T) {
	f := &health.LoginFrequencyFactor{Target: 20}

	tests := []struct {
		logins int
		want   float64
	}{
		{0, 0},
		{5, 25},
		{10, 50},
		{20, 100}, // saturates exactly at target
		{40, 100}, // capped, no reward beyond target
	}
	for _, tc := range tests {
		got := f.Evaluate(&health.Snapshot{Logins30d: tc.logins})
		if got != tc.want {
			t.Errorf("logins=%d: score = %f, want %f", tc.logins, got, tc.want)
		}
	}
}

func TestLoginFrequencyMonotonic(t *testing.T) {
	f := &health.LoginFrequencyFactor{Target: 20}
	prev := -1.0
	for logins := 0; logins <= 50; logins++ {
		got := f.Evaluate(&health.Snapshot{Logins30d: logins})
		if got < prev {
			t.Fatalf("score decreased at logins=%d: %f < %f", logins, got, prev)
		}
		prev = got
	}
}

func TestFeatureAdoptionFactor(t *testing.T) {
	f := &health.FeatureAdoptionFactor{TotalKeyFeatures: 5}

	tests := []struct {
		used int
		want float64
	}{
		{0, 0},
		{1, 20},
		{3, 60},
		{5, 100},
		{9, 100}, // clamped to catalog size, never above 100
	}
	for _, tc := range tests {
		got := f.Evaluate(&health.Snapshot{DistinctFeatures90d: tc.used})
		if got != tc.want {
			t.Errorf("used=%d: score = %f, want %f", tc.used, got, tc.want)
		}
	}
}

func TestSupportLoadFactor(t *testing.T) {
	f := &health.SupportLoadFactor{MaxTickets: 10}

	tests := []struct {
		tickets int
		want    float64
	}{
		{0, 100},
		{2, 80},
		{5, 50},
		{10, 0},
		{25, 0}, // beyond the saturation threshold stays at the floor
	}
	for _, tc := range tests {
		got := f.Evaluate(&health.Snapshot{Tickets90d: tc.tickets})
		if got != tc.want {
			t.Errorf("tickets=%d: score = %f, want %f", tc.tickets, got, tc.want)
		}
	}
}

func TestSupportLoadNonIncreasing(t *testing.T) {
	f := &health.SupportLoadFactor{MaxTickets: 10}
	prev := 101.0
	for tickets := 0; tickets <= 30; tickets++ {
		got := f.Evaluate(&health.Snapshot{Tickets90d: tickets})
		if got > prev {
			t.Fatalf("score increased at tickets=%d: %f > %f", tickets, got, prev)
		}
		prev = got
	}
}

func TestInvoiceTimelinessFactor(t *testing.T) {
	f := &health.InvoiceTimelinessFactor{}

	onTime := health.Invoice{PaidOnTime: true}
	late := health.Invoice{PaidOnTime: false}

	tests := []struct {
		name     string
		invoices []health.Invoice
		want     float64
	}{
		{"no history is neutral", nil, 50},
		{"empty slice is neutral", []health.Invoice{}, 50},
		{"all on time", []health.Invoice{onTime, onTime, onTime}, 100},
		{"all late", []health.Invoice{late, late, late}, 0},
		{"two of three on time", []health.Invoice{onTime, onTime, late}, 66.666},
		{"single on-time invoice", []health.Invoice{onTime}, 100},
		{"single late invoice", []health.Invoice{late}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Evaluate(&health.Snapshot{Invoices: tc.invoices})
			if math.Abs(got-tc.want) > 0.1 {
				t.Errorf("score = %f, want ~%f", got, tc.want)
			}
		})
	}
}

func TestAPITrendFactor(t *testing.T) {
	f := &health.APITrendFactor{}

	tests := []struct {
		name       string
		curr, prev int
		want       float64
	}{
		{"no data either window is neutral", 0, 0, 50},
		{"growth from zero baseline", 10, 0, 100},
		{"flat usage", 10, 10, 50},
		{"doubled, change clamped at +1", 20, 10, 100},
		{"tripled, still clamped", 300, 10, 100},
		{"halved", 5, 10, 25},
		{"dropped to zero", 0, 10, 0},
		{"modest growth", 12, 10, 60},
		{"modest decline", 9, 10, 45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Evaluate(&health.Snapshot{
				APICallsCurr30d: tc.curr,
				APICallsPrev30d: tc.prev,
			})
			if math.Abs(got-tc.want) > 0.001 {
				t.Errorf("curr=%d prev=%d: score = %f, want %f", tc.curr, tc.prev, got, tc.want)
			}
		})
	}
}
