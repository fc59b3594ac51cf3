// Package logger provides structured JSON logging for gpucatalog on top of
// go.uber.org/zap.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - Logger is the contract every other package takes
//   - *LoggerClient is the zap-backed implementation returned by
//     NewLoggerClient
//   - FXModule provides both to the fx container
//
// Entries are JSON with ISO-8601 timestamps, capitalized levels, the caller,
// and "service" and "pid" fields on every line.
//
// # Direct Usage (Without FX)
//
// Every method takes a message, an optional error and any number of field
// maps:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "gpucatalog",
//	})
//
//	log.Info("Server started", nil, map[string]interface{}{"addr": ":5000"})
//	log.Error("Query failed", err, map[string]interface{}{"backend": "mysql"})
//
// A non-nil error is added as the "error" field. Fatal logs and exits.
//
// Tests that do not inspect output use NewNop:
//
//	s := sqlstore.NewStore(db, nil, logger.NewNop())
//
// # Trace Correlation
//
// The *WithContext variants add trace_id and span_id from the OpenTelemetry
// span in ctx when Config.EnableTracing is set:
//
//	ctx, span := tr.StartSpan(ctx, "sqlstore.list")
//	defer span.End()
//	log.InfoWithContext(ctx, "Listing cards", nil, map[string]interface{}{
//	    "filters": !set.IsEmpty(),
//	})
//
// Without a recording span, or with tracing disabled, they behave like the
// plain methods.
//
// # FX Module Integration
//
// FXModule provides *LoggerClient and Logger from a logger.Config and syncs
// buffered entries on stop:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Supply(logger.Config{Level: logger.Debug, ServiceName: "gpucatalog"}),
//	    fx.Invoke(func(log logger.Logger) {
//	        log.Info("Service started", nil, nil)
//	    }),
//	)
//
// The serve command also routes fx's own events through the same zap logger
// with fxevent.ZapLogger.
//
// # Configuration
//
// Environment variables:
//
//	ZAP_LOGGER_LEVEL       debug, info, warning or error
//	LOGGER_SERVICE_NAME    value of the "service" field
//	LOGGER_ENABLE_TRACING  true to add trace fields
//
// An unknown level falls back to info.
package logger
