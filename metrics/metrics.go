package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the review UI.
type Metrics struct {
	Registry        *prometheus.Registry
	ActionsTotal    *prometheus.CounterVec
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	ExportBytes     prometheus.Counter
	ReviewsRendered prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	actions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewui_actions_total",
			Help: "User actions handled by the controller, by action and outcome code.",
		},
		[]string{"action", "outcome"},
	)
	backendRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewui_backend_requests_total",
			Help: "Requests issued to the scraping backend, by endpoint and status class.",
		},
		[]string{"endpoint", "status"},
	)
	backendDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewui_backend_request_duration_seconds",
			Help:    "Latency of scraping backend requests.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"endpoint"},
	)
	exportBytes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewui_export_bytes_total",
			Help: "Bytes of spreadsheet content handed to downloaders.",
		},
	)
	reviewsRendered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewui_reviews_rendered_total",
			Help: "Review rows rendered into the results table.",
		},
	)

	registry.MustRegister(actions, backendRequests, backendDuration, exportBytes, reviewsRendered)

	return &Metrics{
		Registry:        registry,
		ActionsTotal:    actions,
		BackendRequests: backendRequests,
		BackendDuration: backendDuration,
		ExportBytes:     exportBytes,
		ReviewsRendered: reviewsRendered,
	}
}

// IncAction records a finished user action. outcome is "ok" or an error code.
func (m *Metrics) IncAction(action, outcome string) {
	if m == nil {
		return
	}
	m.ActionsTotal.WithLabelValues(action, outcome).Inc()
}

// ObserveBackend records one backend round trip. status is "2xx", "4xx",
// "5xx" or "error" when no response arrived.
func (m *Metrics) ObserveBackend(endpoint, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(endpoint, status).Inc()
	m.BackendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// AddExportBytes adds n to the exported bytes counter.
func (m *Metrics) AddExportBytes(n int) {
	if m == nil {
		return
	}
	m.ExportBytes.Add(float64(n))
}

// AddReviewsRendered adds n to the rendered rows counter.
func (m *Metrics) AddReviewsRendered(n int) {
	if m == nil {
		return
	}
	m.ReviewsRendered.Add(float64(n))
}
