// Package server exposes every registered store over REST.
//
// # Routes
//
// Each store is mounted under its backend name:
//
//	GET    /api/{backend}/cards        list, filtered by query parameters
//	POST   /api/{backend}/cards        create
//	GET    /api/{backend}/cards/{id}   read one
//	PUT    /api/{backend}/cards/{id}   partial update
//	DELETE /api/{backend}/cards/{id}   delete
//	GET    /healthz                    ping every store
//
// Relational stores only route numeric ids; any other id is answered by the
// not-found envelope. Document ids are passed through as given.
//
// List accepts search, manufacturer, memory_type, memory_min, memory_max,
// price_min and price_max. With filter.Config.Strict set, a malformed
// numeric parameter is a 400 instead of being ignored.
//
// # Responses
//
// Every response, including unknown routes and methods, uses the Envelope
// shape:
//
//	{"success": true, "data": [...]}
//	{"success": true, "id": "42", "message": "Card created successfully"}
//	{"success": true, "message": "Card updated successfully"}
//	{"success": false, "error": "Card not found"}
//
// A missing card is 404, a body or filter the server cannot accept is 400 and
// every other store failure is 500 with the error text. /healthz answers 200
// when every store responds and 503 otherwise, with the status of each
// backend.
//
// # Direct Usage (Without FX)
//
//	handler, err := server.NewRouter(server.Options{
//	    Stores:  []store.Store{mysqlStore, mongoStore},
//	    Logger:  log,
//	    Metrics: m,
//	})
//	if err != nil {
//	    return err // two stores share a backend name
//	}
//
//	srv := server.NewServer(server.Config{Port: server.DefaultPort}, handler, log)
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
//
// Start returns once the listener is bound; requests are served in the
// background.
//
// # Middleware
//
// Requests pass through, in order: an OpenTelemetry server span (when
// Config.EnableTracing is set), chi's RequestID, zap request logging, chi's
// Recoverer, Prometheus request metrics labelled by route pattern (when
// Metrics is set) and CORS.
//
// # FX Module Integration
//
// FXModule builds the router from the stores in the "stores" value group and
// runs the server from start to stop:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    server.FXModule,
//	    fx.Supply(server.Config{Port: 5000}, filter.Config{}),
//	    fx.Provide(
//	        fx.Annotate(newMongoStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)),
//	    ),
//	)
//
// *metrics.Metrics is optional in the container.
//
// # Configuration
//
//	HTTP_HOST, HTTP_PORT                                   listen address, port defaults to 5000
//	HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
//	HTTP_CORS_ALLOWED_ORIGINS                              comma separated, defaults to every origin
//	HTTP_ENABLE_TRACING                                    true to trace requests
package server
