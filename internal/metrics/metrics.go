// Package metrics provides Prometheus metrics for the Pulsecheck service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the API layer records into.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ScoresComputed      prometheus.Counter
	ScoringErrors       prometheus.Counter
	EventsIngested      *prometheus.CounterVec
}

// New registers the Pulsecheck collectors on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		HTTPRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulsecheck",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		HTTPRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pulsecheck",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		ScoresComputed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "pulsecheck",
			Name:      "scores_computed_total",
			Help:      "Health score computations performed.",
		}),
		ScoringErrors: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "pulsecheck",
			Name:      "scoring_errors_total",
			Help:      "Health score computations that failed.",
		}),
		EventsIngested: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulsecheck",
			Name:      "events_ingested_total",
			Help:      "Activity events accepted by the ingest endpoint, by type.",
		}, []string{"type"}),
	}
}
