package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Aleph-Alpha/gpucatalog/v1/config"
	"github.com/Aleph-Alpha/gpucatalog/v1/database"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/mongodb"
	"github.com/Aleph-Alpha/gpucatalog/v1/seed"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
	"github.com/Aleph-Alpha/gpucatalog/v1/store/docstore"
	"github.com/Aleph-Alpha/gpucatalog/v1/store/sqlstore"
)

// seedStores connects to the selected backends directly, without the fx
// graph, and prints a per-backend summary.
func seedStores(cfg config.Config, backend string, out, errOut io.Writer) int {
	log := logger.NewLoggerClient(cfg.Logger)
	defer func() { _ = log.Zap.Sync() }()

	ctx := context.Background()
	var stores []store.Store

	if backend == "" || backend == "mysql" || backend == "postgres" {
		db, err := database.NewClient(cfg.Relational, log)
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		defer func() { _ = db.GracefulShutdown() }()

		if err := sqlstore.EnsureSchema(ctx, db); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		s := sqlstore.NewStore(db, nil, log)
		if backend == "" || backend == s.Backend() {
			stores = append(stores, s)
		}
	}

	if backend == "" || backend == docstore.Backend {
		mongo, err := mongodb.NewMongoDB(cfg.MongoDB, log)
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		defer func() { _ = mongo.GracefulShutdown(context.Background()) }()

		_ = docstore.EnsureIndexes(ctx, mongo.Database, log)
		stores = append(stores, docstore.NewStore(mongo, nil, log))
	}

	if len(stores) == 0 {
		fmt.Fprintf(errOut, "error: backend %q is not configured\n", backend)
		return 2
	}

	code := 0
	for _, res := range seed.Seed(ctx, log, stores...) {
		fmt.Fprintf(out, "%s: %d/%d cards added\n", res.Backend, res.Inserted, res.Total)
		if res.Inserted < res.Total {
			code = 1
		}
	}
	return code
}
