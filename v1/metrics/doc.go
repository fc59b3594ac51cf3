// Package metrics exposes Prometheus metrics for gpucatalog.
//
// A *Metrics owns a private registry wrapped with a constant "service" label,
// an HTTP middleware recording http_requests_total and
// http_request_duration_seconds by method, chi route pattern and status, and
// an observability.Observer implementation recording store_operations_total
// and store_operation_duration_seconds by component, operation and status.
//
// The registry is served at /metrics on Config.Address by a separate
// http.Server whose lifecycle FXModule manages:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Supply(metrics.Config{Address: ":9090", ServiceName: "gpucatalog"}),
//	)
package metrics
