package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// FXModule provides *Tracer and flushes it on shutdown.
// Requires tracer.Config and logger.Logger in the container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the tracer provider down on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down tracer", nil, nil)
			return tracer.Shutdown(ctx)
		},
	})
}
