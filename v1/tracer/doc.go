// Package tracer configures OpenTelemetry tracing for gpucatalog and offers a
// small helper API around spans.
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "gpucatalog"}, log)
//	ctx, span := tr.StartSpan(ctx, "mysql.list")
//	defer span.End()
//	tr.SetAttributes(span, map[string]interface{}{"db.table": "graphics_cards"})
//
// Export is off by default; set Config.EnableExport and the standard
// OTEL_EXPORTER_OTLP_ENDPOINT variable to ship spans over OTLP/HTTP.
package tracer
