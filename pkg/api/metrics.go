package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Resource store metrics
	resourceKinds   prometheus.Gauge
	storeReadsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics against the given
// registerer. Tests pass a fresh registry so parallel servers never collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lodestone_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lodestone_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lodestone_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lodestone_auth_requests_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"status"},
		),

		resourceKinds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lodestone_resource_kinds",
				Help: "Number of resource kinds currently published",
			},
		),

		storeReadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lodestone_store_reads_total",
				Help: "Total number of resource store reads",
			},
			[]string{"operation", "status"},
		),
	}
}

// InstrumentHandler wraps an HTTP handler with request metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.httpRequestsInFlight.WithLabelValues(method, endpoint).Inc()
		defer m.httpRequestsInFlight.WithLabelValues(method, endpoint).Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(recorder, r)

		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(recorder.status)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// InstrumentAuthMiddleware counts authentication outcomes around the API key
// middleware.
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		wrapped := next(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.authRequestsTotal.WithLabelValues(statusSuccess).Inc()
			handler.ServeHTTP(w, r)
		}))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			wrapped.ServeHTTP(recorder, r)
			if recorder.status == http.StatusUnauthorized {
				m.authRequestsTotal.WithLabelValues(statusError).Inc()
			}
		})
	}
}

// RecordStoreRead counts one resource store read
func (m *Metrics) RecordStoreRead(operation string, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.storeReadsTotal.WithLabelValues(operation, status).Inc()
}

// SetResourceKinds updates the published kind count gauge
func (m *Metrics) SetResourceKinds(n int) {
	m.resourceKinds.Set(float64(n))
}

// statusRecorder captures the response status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
