package database

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// FXModule provides database.Client from a database.Config and supervises
// the connection for the lifetime of the application.
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    fx.Supply(database.MariaDBConfig(mariadb.Config{...})),
//	)
var FXModule = fx.Module("database",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create a database client
type DatabaseParams struct {
	fx.In

	Config Config
	Logger logger.Logger
}

// NewClientWithDI is NewClient in fx parameter-object form.
func NewClientWithDI(params DatabaseParams) (Client, error) {
	return NewClient(params.Config, params.Logger)
}

// DatabaseLifecycleParams groups the dependencies needed for database lifecycle management
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    Client
	Logger    logger.Logger
}

// RegisterDatabaseLifecycle runs the monitor and retry loops from start to
// stop and closes the pool on stop.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	wg := &sync.WaitGroup{}
	runCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Client.MonitorConnection(runCtx)
			}()
			go func() {
				defer wg.Done()
				params.Client.RetryConnection(runCtx)
			}()

			params.Logger.Info("Database client initialized", nil, map[string]interface{}{
				"dialect": params.Client.Dialect(),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Shutting down database client", nil, nil)
			cancel()
			err := params.Client.GracefulShutdown()
			wg.Wait()
			return err
		},
	})
}
