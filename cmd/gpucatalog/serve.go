package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/gpucatalog/v1/config"
	"github.com/Aleph-Alpha/gpucatalog/v1/database"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/metrics"
	"github.com/Aleph-Alpha/gpucatalog/v1/mongodb"
	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
	"github.com/Aleph-Alpha/gpucatalog/v1/server"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
	"github.com/Aleph-Alpha/gpucatalog/v1/store/docstore"
	"github.com/Aleph-Alpha/gpucatalog/v1/store/sqlstore"
	"github.com/Aleph-Alpha/gpucatalog/v1/tracer"
)

const (
	startTimeout = 30 * time.Second
	stopTimeout  = 15 * time.Second
	setupTimeout = 10 * time.Second
)

// appOptions wires the service. Extra options are appended, which tests
// use to replace pieces.
func appOptions(cfg config.Config, extra ...fx.Option) fx.Option {
	return fx.Options(
		fx.Supply(
			cfg.Logger,
			cfg.Metrics,
			cfg.Tracer,
			cfg.Relational,
			cfg.MongoDB,
			cfg.HTTP,
			cfg.Filters,
		),
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap.Named("fx")}
		}),

		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		database.FXModule,
		mongodb.FXModule,
		server.FXModule,

		fx.Provide(
			fx.Annotate(newRelationalStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)),
			fx.Annotate(newDocumentStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)),
		),

		fx.Options(extra...),
	)
}

func newRelationalStore(db database.Client, tr *tracer.Tracer, log logger.Logger, obs observability.Observer) (*sqlstore.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := sqlstore.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return sqlstore.NewStore(db, tr, log).WithObserver(obs), nil
}

func newDocumentStore(db *mongodb.MongoDB, tr *tracer.Tracer, log logger.Logger, obs observability.Observer) *docstore.Store {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	// Queries work without the indexes; EnsureIndexes has logged the cause.
	_ = docstore.EnsureIndexes(ctx, db.Database, log)

	return docstore.NewStore(db, tr, log).WithObserver(obs)
}

func serve(cfg config.Config, errOut io.Writer, sigCh <-chan os.Signal) int {
	app := fx.New(appOptions(cfg))
	if err := app.Err(); err != nil {
		fmt.Fprintln(errOut, "error: failed to build application:", err)
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(errOut, "error: failed to start:", err)
		return 1
	}

	select {
	case <-sigCh:
	case <-app.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintln(errOut, "error: unclean shutdown:", err)
		return 1
	}
	return 0
}
