package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
)

// MetricsCollector is the contract implemented by *Metrics.
type MetricsCollector interface {
	observability.Observer

	// Middleware returns chi-compatible middleware recording request count
	// and latency by method, route pattern and status.
	Middleware() func(next http.Handler) http.Handler

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)
