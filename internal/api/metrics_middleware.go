package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/metrics"
)

// statusWriter captures the response status code for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// newMetricsMiddleware records request counts and latency per route.
func newMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		path := normalizePath(r.URL.Path)
		metrics.APIRequests.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		metrics.APIRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses paths to their route shape so the path label stays
// low-cardinality.
func normalizePath(path string) string {
	if path == "/metrics" {
		return "/metrics"
	}
	if !strings.HasPrefix(path, "/api/v1/") {
		return "other"
	}
	// Routes are at most two segments below /api/v1 and carry no IDs, so
	// the trimmed path is already the route shape.
	rest := strings.Trim(strings.TrimPrefix(path, "/api/v1/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "/api/v1/" + strings.Join(parts, "/")
}
