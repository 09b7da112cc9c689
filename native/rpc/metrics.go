package rpc

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/covenant-finance/covenant/observability"
)

// statusRecorder captures the status code a handler ultimately writes, since
// http.ResponseWriter does not expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request counts, error counts, and latency for
// every route under module "rpc" using the package-wide module metrics
// registry.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		observability.ModuleMetrics().Observe("rpc", r.Method+" "+r.URL.Path, recorder.status, time.Since(start))
	})
}

// handleMetrics exposes the process's Prometheus metrics for scraping.
func handleMetrics() http.Handler {
	return promhttp.Handler()
}
