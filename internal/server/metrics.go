package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of one server
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Bytes    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zugferd_requests_total",
			Help: "Processed documents by operation and outcome",
		}, []string{"operation", "outcome"}), // outcome: ok, invalid, unrecognized, malformed, unsupported, error

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zugferd_request_duration_seconds",
			Help:    "Duration of document processing by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		Bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zugferd_document_bytes_total",
			Help: "Bytes of XML read and written",
		}, []string{"direction"}),
	}
}

// Observe records one processed document
func (m *Metrics) Observe(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, outcome).Inc()
	m.Duration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddBytes counts document bytes in the given direction
func (m *Metrics) AddBytes(direction string, n int) {
	if m != nil {
		m.Bytes.WithLabelValues(direction).Add(float64(n))
	}
}
