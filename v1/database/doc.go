// Package database selects the relational backend of gpucatalog.
//
// The package defines one Client interface implemented by both relational
// clients:
//   - *mariadb.MariaDB for MariaDB and MySQL
//   - *postgres.Postgres for PostgreSQL
//
// Application code, the relational card store in particular, depends only on
// Client. Config.Type picks the implementation, so switching databases is a
// configuration change.
//
// # Basic Usage
//
// Build a Config with one of the helpers and hand it to NewClient:
//
//	import (
//	    "github.com/Aleph-Alpha/gpucatalog/v1/database"
//	    "github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
//	)
//
//	cfg := database.MariaDBConfig(mariadb.Config{
//	    Connection: mariadb.Connection{
//	        Host:           "localhost",
//	        Port:           "3306",
//	        User:           "root",
//	        DbName:         "graphics_cards_db",
//	        CreateDatabase: true,
//	    },
//	})
//
//	db, err := database.NewClient(cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer db.GracefulShutdown()
//
//	if err := sqlstore.EnsureSchema(ctx, db); err != nil {
//	    return err
//	}
//	cards := sqlstore.NewStore(db, tracer, log)
//
// The type is matched case-insensitively; anything other than "mariadb" or
// "postgres" is an error.
//
// # Running Queries
//
// The CRUD helpers (First, Find, Create, UpdateWhere, Delete, Exec) cover
// single statements. Anything else goes through Query, which hands the
// callback a gorm handle bound to ctx:
//
//	var rows []cardRow
//	err := db.Query(ctx, func(tx *gorm.DB) error {
//	    where, args := sqlstore.BuildWhereFor(db.Dialect(), filters)
//	    return tx.Where(where, args...).Order("id DESC").Find(&rows).Error
//	})
//
// Dialect reports "mariadb" or "postgres" so callers can render
// dialect-specific SQL (PostgreSQL has no case-insensitive collation, so the
// card store switches to ILIKE and LOWER there).
//
// # Using with Fx Dependency Injection
//
// FXModule provides Client from a database.Config in the container and runs
// the connection monitor and reconnect loops between start and stop:
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    fx.Supply(cfg.Relational),
//	    fx.Invoke(func(db database.Client) {
//	        // Use db...
//	    }),
//	)
//
// On stop the loops are cancelled and the pool is closed.
//
// # Error Handling
//
// The helpers return raw gorm and driver errors. Use TranslateError to
// normalize them to the sentinels of the implementing package
// (mariadb.ErrRecordNotFound, mariadb.ErrDuplicateKey, ...) and IsRetryable
// to decide whether a failed call is worth repeating:
//
//	if err := db.First(ctx, &row, "id = ?", id); err != nil {
//	    if errors.Is(db.TranslateError(err), mariadb.ErrRecordNotFound) {
//	        return store.ErrNotFound
//	    }
//	    return err
//	}
//
// # Configuration
//
// Config is loaded from YAML under the "relational" key. Only the driver
// is read from the environment at this level; connection settings come from
// the backend's own variables:
//
//	RELATIONAL_DRIVER   mariadb or postgres
//	MYSQL_HOST, MYSQL_PORT, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE
//	POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DATABASE
package database
