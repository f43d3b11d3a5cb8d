package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	scansApplied     prometheus.Counter
	scanMismatches   prometheus.Counter
	decodesDiscarded prometheus.Counter
	ambiguityPrompts prometheus.Counter
	ordersCompleted  prometheus.Counter
}

// NewMetrics initialises the registry with HTTP and picking metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pickdesk_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pickdesk_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	scansApplied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickdesk_scans_applied_total",
		Help: "Confirmed scan quantities applied to order items.",
	})
	scanMismatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickdesk_scan_mismatches_total",
		Help: "Scans rejected because the code did not match the expected item.",
	})
	decodesDiscarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickdesk_decodes_discarded_total",
		Help: "Camera frames dropped by the decode quality gate.",
	})
	ambiguityPrompts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickdesk_ambiguity_prompts_total",
		Help: "Scans that suspended for duplicate-barcode disambiguation.",
	})
	ordersCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickdesk_orders_completed_total",
		Help: "Orders automatically completed by the fulfillment controller.",
	})

	registry.MustRegister(requests, duration, scansApplied, scanMismatches, decodesDiscarded, ambiguityPrompts, ordersCompleted)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		scansApplied:     scansApplied,
		scanMismatches:   scanMismatches,
		decodesDiscarded: decodesDiscarded,
		ambiguityPrompts: ambiguityPrompts,
		ordersCompleted:  ordersCompleted,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for each HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ScanApplied implements the picking recorder.
func (m *Metrics) ScanApplied() {
	if m != nil {
		m.scansApplied.Inc()
	}
}

// ScanMismatch implements the picking recorder.
func (m *Metrics) ScanMismatch() {
	if m != nil {
		m.scanMismatches.Inc()
	}
}

// DecodeDiscarded implements the picking recorder.
func (m *Metrics) DecodeDiscarded() {
	if m != nil {
		m.decodesDiscarded.Inc()
	}
}

// AmbiguityPrompted implements the picking recorder.
func (m *Metrics) AmbiguityPrompted() {
	if m != nil {
		m.ambiguityPrompts.Inc()
	}
}

// OrderCompleted implements the picking recorder.
func (m *Metrics) OrderCompleted() {
	if m != nil {
		m.ordersCompleted.Inc()
	}
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
