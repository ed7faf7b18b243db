/*
metrics.go - Prometheus metrics for the HTTP surface

PURPOSE:
  Counts requests per route/status, measures request duration, and
  tracks verification outcomes and log resets. Exposed on /metrics.

CARDINALITY:
  The path label is the matched chi route pattern, never the raw
  request path. Requests that match no route (scanner probes, typos)
  collapse into a single "unrouted" series.
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cantina_http_requests_total",
			Help: "Total HTTP requests handled, by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cantina_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	verificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cantina_verificacoes_total",
			Help: "Verification attempts by result",
		},
		[]string{"resultado"},
	)

	resetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cantina_zeramentos_total",
			Help: "Admission log resets by trigger",
		},
		[]string{"origem"},
	)
)

func observeVerification(result string) {
	verificationsTotal.WithLabelValues(result).Inc()
}

func observeReset(trigger string) {
	resetsTotal.WithLabelValues(trigger).Inc()
}

// metricsMiddleware records request counts and durations.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrapped.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern returns the chi route pattern matched by the request,
// resolved after the handler ran. Unmatched requests share one label
// value so arbitrary probe paths cannot mint new series.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unrouted"
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the original ResponseWriter.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
