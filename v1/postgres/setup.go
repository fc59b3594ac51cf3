package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// Dialect is the value returned by (*Postgres).Dialect.
const Dialect = "postgres"

// Postgres wraps gorm.DB with connection monitoring and automatic
// reconnection.
//
// Concurrency: the active *gorm.DB is kept in an atomic pointer and swapped
// on reconnect without blocking readers.
type Postgres struct {
	cfg             Config
	log             logger.Logger
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres connects to PostgreSQL and returns the wrapper. The initial
// connection is verified with a ping.
func NewPostgres(cfg Config, log logger.Logger) (*Postgres, error) {
	conn, err := connectToPostgres(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		log:             log,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)
	return pg, nil
}

func buildDSN(c Connection) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DbName, sslMode)
}

func connectToPostgres(cfg Config, log logger.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(buildDSN(cfg.Connection)),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = maxOpen
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime <= 0 {
		maxLifetime = 30 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := databaseInstance.PingContext(ctx); err != nil {
		_ = databaseInstance.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})
	return database, nil
}

// RetryConnection reconnects whenever MonitorConnection reports a failure.
// It returns on shutdown or when ctx is done.
func (p *Postgres) RetryConnection(ctx context.Context) {
	for {
		select {
		case <-p.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case cause, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
			p.log.Warn("PostgreSQL connection lost, reconnecting", cause, nil)
			if !p.reconnect(ctx) {
				return
			}
		}
	}
}

// reconnect loops until a new connection is stored. It reports false when
// interrupted by shutdown.
func (p *Postgres) reconnect(ctx context.Context) bool {
	for {
		select {
		case <-p.shutdownSignal:
			return false
		case <-ctx.Done():
			return false
		default:
		}

		newConn, err := connectToPostgres(p.cfg, p.log)
		if err != nil {
			p.log.Error("PostgreSQL reconnection failed", err, nil)
			time.Sleep(time.Second)
			continue
		}
		if old := p.client.Swap(newConn); old != nil {
			if sqlDB, err := old.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return true
	}
}

// MonitorConnection pings the database every 10 seconds and signals
// RetryConnection on failure.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := p.Ping(pingCtx)
			cancel()
			if err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		}
	}
}

// GracefulShutdown stops the monitor loops and closes the pool.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	db := p.client.Load()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
