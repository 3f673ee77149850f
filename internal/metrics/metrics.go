// Package metrics defines Prometheus metrics for the stockline server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockline_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_errors_total",
			Help: "Total errors by kind",
		},
		[]string{"kind"},
	)

	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_gate_decisions_total",
			Help: "SQL security gate decisions by scope and outcome",
		},
		[]string{"scope", "decision"},
	)

	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_model_calls_total",
			Help: "Language model calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ModelTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_model_tokens_total",
			Help: "Language model tokens by provider and kind",
		},
		[]string{"provider", "kind"},
	)

	ModelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockline_model_call_duration_seconds",
			Help:    "Language model call duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockline_query_duration_seconds",
			Help:    "Assistant read-only query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stockline_audit_write_failures_total",
			Help: "Audit entries that could not be written",
		},
	)

	IdentityCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockline_identity_cache_events_total",
			Help: "Identity cache hits and misses",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, RequestsInFlight, ErrorsTotal,
		GateDecisions, ModelCalls, ModelTokens, ModelDuration,
		QueryDuration, AuditWriteFailures, IdentityCacheEvents,
	)
}
