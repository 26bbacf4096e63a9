// Package metrics defines all Prometheus metrics for keapilot.
// All metrics use the "keapilot_" prefix.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keapilot"

// --- Validation metrics ---

var (
	// ValidationRuns counts validation requests by entity and outcome.
	ValidationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_runs_total",
		Help:      "Total validation runs, by entity and outcome (valid, invalid).",
	}, []string{"entity", "outcome"})

	// ValidationProblems counts individual errors and warnings reported.
	ValidationProblems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_problems_total",
		Help:      "Total validation problems reported, by entity and severity.",
	}, []string{"entity", "severity"})
)

// --- Vendor option encoding metrics ---

var (
	// VendorEncodings counts vendor payload encodings by format.
	VendorEncodings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vendor_encodings_total",
		Help:      "Total vendor option payloads encoded, by format (tr069, raw).",
	}, []string{"format"})

	// VendorEncodingErrors counts failed vendor payload encodings.
	VendorEncodingErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vendor_encoding_errors_total",
		Help:      "Total vendor option encodings rejected (oversized payloads).",
	})
)

// --- Envelope metrics ---

var (
	// EnvelopesBuilt counts control-agent envelopes prepared, by command.
	EnvelopesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "envelopes_built_total",
		Help:      "Total control-agent command envelopes prepared, by command.",
	}, []string{"command"})
)

// --- Auth metrics ---

var (
	// LoginAttempts counts console login attempts by backend and outcome.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total console login attempts, by backend (local, radius) and outcome.",
	}, []string{"backend", "outcome"})
)

// --- API metrics ---

var (
	// APIRequests counts HTTP API requests.
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total HTTP API requests, by method, path, and status.",
	}, []string{"method", "path", "status"})

	// APIRequestDuration tracks HTTP API request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "HTTP API request duration in seconds.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"method", "path"})
)
