package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics holds the service registry, the built-in collectors and the HTTP
// server exposing /metrics.
type Metrics struct {
	// Server serves the registry at /metrics.
	Server *http.Server

	// Registry is private to this process so tests can build as many
	// instances as they like.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	httpRequestsTotal      *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
}

// NewMetrics builds the registry, wraps it with the constant service label
// and registers the HTTP and store metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    Namespace:   "gpucatalog",
//	    ServiceName: "gpucatalog",
//	})
//	router.Use(m.Middleware())
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		registerer: registerer,
		namespace:  cfg.Namespace,
	}

	m.httpRequestsTotal = createCounterVec(cfg.Namespace, "http_requests_total",
		"Total number of HTTP requests", []string{"method", "path", "status"})
	m.httpRequestDuration = createHistogramVec(cfg.Namespace, "http_request_duration_seconds",
		"HTTP request duration in seconds", []string{"method", "path", "status"}, latencyBuckets)
	m.storeOperationsTotal = createCounterVec(cfg.Namespace, "store_operations_total",
		"Total number of store operations", []string{"component", "operation", "status"})
	m.storeOperationDuration = createHistogramVec(cfg.Namespace, "store_operation_duration_seconds",
		"Store operation duration in seconds", []string{"component", "operation", "status"}, latencyBuckets)

	registerer.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.storeOperationsTotal,
		m.storeOperationDuration,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
