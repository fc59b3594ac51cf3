package server

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/metrics"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

// FXModule provides the router and *Server and runs the server from start
// to stop.
//
// Stores are collected from the "stores" value group:
//
//	fx.Provide(fx.Annotate(newMongoStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)))
var FXModule = fx.Module("server",
	fx.Provide(
		NewRouterWithDI,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RouterParams groups the dependencies of the router.
type RouterParams struct {
	fx.In

	Config  Config
	Filters filter.Config
	Stores  []store.Store `group:"stores"`
	Logger  logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// NewRouterWithDI is NewRouter in fx parameter-object form.
func NewRouterWithDI(p RouterParams) (http.Handler, error) {
	return NewRouter(Options{
		Stores:             p.Stores,
		Filters:            p.Filters,
		Logger:             p.Logger,
		Metrics:            p.Metrics,
		CORSAllowedOrigins: p.Config.CORSAllowedOrigins,
		EnableTracing:      p.Config.EnableTracing,
	})
}

// RegisterServerLifecycle starts listening on start and drains on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}
