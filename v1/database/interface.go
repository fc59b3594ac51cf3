package database

import (
	"context"

	"gorm.io/gorm"
)

// Client is the relational client contract shared by *mariadb.MariaDB and
// *postgres.Postgres.
//
// CRUD helpers return raw gorm/driver errors; use TranslateError to map them
// to the implementation's sentinels.
type Client interface {
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)

	// Query runs fn with a context-bound handle for chains the helpers do
	// not cover.
	Query(ctx context.Context, fn func(db *gorm.DB) error) error

	// DB exposes the raw gorm handle.
	DB() *gorm.DB

	// Dialect is "mariadb" or "postgres".
	Dialect() string
	Ping(ctx context.Context) error

	TranslateError(err error) error
	IsRetryable(err error) bool

	// Connection supervision, started and stopped by RegisterDatabaseLifecycle.
	MonitorConnection(ctx context.Context)
	RetryConnection(ctx context.Context)
	GracefulShutdown() error
}
