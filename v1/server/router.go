package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/metrics"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

// Options assembles a router.
type Options struct {
	Stores  []store.Store
	Filters filter.Config
	Logger  logger.Logger

	// Metrics is optional.
	Metrics *metrics.Metrics

	CORSAllowedOrigins []string
	EnableTracing      bool
}

// NewRouter mounts every store at /api/{backend}/cards plus /healthz.
// Backend names must be unique.
func NewRouter(opts Options) (http.Handler, error) {
	r := chi.NewRouter()

	if opts.EnableTracing {
		r.Use(otelhttp.NewMiddleware("gpucatalog"))
	}
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(cors.Handler(corsOptions(opts.CORSAllowedOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	seen := make(map[string]bool, len(opts.Stores))
	for _, s := range opts.Stores {
		backend := s.Backend()
		if seen[backend] {
			return nil, fmt.Errorf("duplicate store backend %q", backend)
		}
		seen[backend] = true

		h := &cardsHandler{store: s, filters: opts.Filters, log: opts.Logger}
		r.Route("/api/"+backend+"/cards", h.routes)
	}

	r.Get("/healthz", healthHandler(opts.Stores))

	return r, nil
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}
}
