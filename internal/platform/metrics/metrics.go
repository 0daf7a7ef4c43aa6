// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes the Prometheus collectors of the Lumen API.

Collectors:

  - lumen_http_request_duration_seconds: latency by method, route and status.
  - lumen_http_requests_total: request count by method, route and status.
  - lumen_retrieval_total: content reads by entity, operation and outcome.

Route labels use the chi route pattern so ids never reach a label value.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lumen"

// Retrieval outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	retrievalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_total",
			Help:      "Content retrievals by entity, operation and outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, retrievalTotal)
}

// # HTTP Instrumentation

// Middleware records HTTP request duration and count.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			recorder := &statusWriter{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			status := strconv.Itoa(recorder.status)
			path := routePattern(request)

			httpRequestDuration.WithLabelValues(request.Method, path, status).Observe(time.Since(startTime).Seconds())
			httpRequestsTotal.WithLabelValues(request.Method, path, status).Inc()
		})
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// # Domain Instrumentation

// ObserveRetrieval counts one content read.
func ObserveRetrieval(entity, operation, outcome string) {
	retrievalTotal.WithLabelValues(entity, operation, outcome).Inc()
}

// RetrievalCount returns the current value of one retrieval series.
func RetrievalCount(entity, operation, outcome string) prometheus.Counter {
	return retrievalTotal.WithLabelValues(entity, operation, outcome)
}

// # Helpers

// routePattern returns the matched chi pattern, or "unknown" outside a chi router.
func routePattern(request *http.Request) string {
	routeContext := chi.RouteContext(request.Context())
	if routeContext == nil {
		return "unknown"
	}
	if pattern := routeContext.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unknown"
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
