package mongodb

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// FXModule provides *MongoDB from a mongodb.Config and disconnects on stop.
var FXModule = fx.Module("mongodb",
	fx.Provide(NewMongoDB),
	fx.Invoke(RegisterMongoDBLifecycle),
)

// RegisterMongoDBLifecycle disconnects the client when the app stops.
func RegisterMongoDBLifecycle(lc fx.Lifecycle, m *MongoDB, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Disconnecting MongoDB client", nil, nil)
			return m.GracefulShutdown(ctx)
		},
	})
}
