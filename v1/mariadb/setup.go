package mariadb

import (
	"context"
	"fmt"
	"sync"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// Dialect is the value returned by (*MariaDB).Dialect.
const Dialect = "mariadb"

// MariaDB wraps a gorm.DB with connection health monitoring and automatic
// reconnection. All access to Client goes through mu.
type MariaDB struct {
	Client          *gorm.DB
	cfg             Config
	log             logger.Logger
	mu              *sync.RWMutex
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewMariaDB connects to MariaDB/MySQL and returns the wrapper. The
// connection is verified with a ping; failure is returned to the caller.
func NewMariaDB(cfg Config, log logger.Logger) (*MariaDB, error) {
	conn, err := connectToMariaDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to MariaDB: %w", err)
	}

	return &MariaDB{
		Client:          conn,
		cfg:             cfg,
		log:             log,
		mu:              &sync.RWMutex{},
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}, nil
}

// buildDSN renders cfg in the go-sql-driver format
// user:password@tcp(host:port)/dbname?params. clientFoundRows is always on so
// UPDATE reports matched rather than changed rows.
func buildDSN(c Connection, dbName string) string {
	dsnCfg := mysqldriver.NewConfig()
	dsnCfg.User = c.User
	dsnCfg.Passwd = c.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = c.Host + ":" + c.Port
	dsnCfg.DBName = dbName
	dsnCfg.ParseTime = true
	dsnCfg.ClientFoundRows = true

	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsnCfg.Params = map[string]string{"charset": charset}

	loc := time.UTC
	if c.Loc != "" {
		if l, err := time.LoadLocation(c.Loc); err == nil {
			loc = l
		}
	}
	dsnCfg.Loc = loc

	if c.TLS != "" {
		dsnCfg.TLSConfig = c.TLS
	}
	if d, err := time.ParseDuration(c.Timeout); err == nil {
		dsnCfg.Timeout = d
	}
	if d, err := time.ParseDuration(c.ReadTimeout); err == nil {
		dsnCfg.ReadTimeout = d
	}
	if d, err := time.ParseDuration(c.WriteTimeout); err == nil {
		dsnCfg.WriteTimeout = d
	}

	return dsnCfg.FormatDSN()
}

func openGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(
		mysql.Open(dsn),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
}

// connectToMariaDB opens the gorm connection, creating the database first
// when the server rejects it as unknown and CreateDatabase is set.
func connectToMariaDB(cfg Config, log logger.Logger) (*gorm.DB, error) {
	database, err := openAndPing(cfg)
	if err != nil && cfg.Connection.CreateDatabase && isUnknownDatabase(err) {
		log.Warn("Database not found, creating it", nil, map[string]interface{}{
			"database": cfg.Connection.DbName,
		})
		if cerr := createDatabase(cfg); cerr != nil {
			return nil, cerr
		}
		database, err = openAndPing(cfg)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Successfully connected to MariaDB/MySQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})
	return database, nil
}

func openAndPing(cfg Config) (*gorm.DB, error) {
	database, err := openGorm(buildDSN(cfg.Connection, cfg.Connection.DbName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MariaDB/MySQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	maxOpenConns := cfg.ConnectionDetails.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 1
	}
	maxIdleConns := cfg.ConnectionDetails.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = maxOpenConns
	}
	connMaxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpenConns)
	databaseInstance.SetMaxIdleConns(maxIdleConns)
	databaseInstance.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := databaseInstance.PingContext(ctx); err != nil {
		_ = databaseInstance.Close()
		return nil, err
	}
	return database, nil
}

func createDatabase(cfg Config) error {
	database, err := openGorm(buildDSN(cfg.Connection, ""))
	if err != nil {
		return fmt.Errorf("failed to connect to server for database creation: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.Connection.DbName)
	if err := database.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.Connection.DbName, err)
	}
	return nil
}

// RetryConnection waits for failure notifications from MonitorConnection
// and reconnects until it succeeds. It returns on shutdown or when ctx is
// done.
func (m *MariaDB) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-m.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case cause, ok := <-m.retryChanSignal:
			if !ok {
				return
			}
			m.log.Warn("MariaDB connection lost, reconnecting", cause, nil)
		innerLoop:
			for {
				select {
				case <-m.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToMariaDB(m.cfg, m.log)
					if err != nil {
						m.log.Error("MariaDB reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					m.mu.Lock()
					old := m.Client
					m.Client = newConn
					m.mu.Unlock()
					if sqlDB, err := old.DB(); err == nil {
						_ = sqlDB.Close()
					}
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every 10 seconds and signals
// RetryConnection on failure.
func (m *MariaDB) MonitorConnection(ctx context.Context) {
	defer m.closeRetryChanOnce.Do(func() {
		close(m.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			return
		case <-ticker.C:
			if err := m.healthCheck(); err != nil {
				select {
				case m.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *MariaDB) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// GracefulShutdown stops the monitor loops and closes the pool.
func (m *MariaDB) GracefulShutdown() error {
	m.closeShutdownOnce.Do(func() {
		close(m.shutdownSignal)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Client == nil {
		return nil
	}
	sqlDB, err := m.Client.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
