package mongodb

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// MongoDB owns one mongo.Client and the configured database handle.
// The driver handles reconnection itself, so there is no monitor loop.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	cfg      Config
	log      logger.Logger
}

// NewMongoDB connects, pings the primary and returns the wrapper.
func NewMongoDB(cfg Config, log logger.Logger) (*MongoDB, error) {
	if cfg.Connection.Database == "" {
		return nil, fmt.Errorf("mongodb database name is required")
	}

	client, err := mongo.Connect(context.Background(), clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), selectionTimeout(cfg))
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB", nil, map[string]interface{}{
		"database": cfg.Connection.Database,
	})

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Connection.Database),
		cfg:      cfg,
		log:      log,
	}, nil
}

// ConnectionURI returns URI or builds mongodb://host:port from the parts.
func (c Connection) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == "" {
		port = "27017"
	}
	return "mongodb://" + net.JoinHostPort(host, port)
}

func selectionTimeout(cfg Config) time.Duration {
	if cfg.ConnectionDetails.ServerSelectionTimeout > 0 {
		return cfg.ConnectionDetails.ServerSelectionTimeout
	}
	return 5 * time.Second
}

func clientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.Connection.ConnectionURI()).
		SetServerSelectionTimeout(selectionTimeout(cfg))

	poolSize := cfg.ConnectionDetails.MaxPoolSize
	if poolSize == 0 {
		poolSize = 1
	}
	opts.SetMaxPoolSize(poolSize)

	if cfg.ConnectionDetails.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectionDetails.ConnectTimeout)
	}

	if cfg.Connection.Username != "" {
		authSource := cfg.Connection.AuthSource
		if authSource == "" {
			authSource = "admin"
		}
		opts.SetAuth(options.Credential{
			Username:   cfg.Connection.Username,
			Password:   cfg.Connection.Password,
			AuthSource: authSource,
		})
	}
	return opts
}

// Collection returns a handle for name in the configured database.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Ping checks the primary is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// GracefulShutdown disconnects the client.
func (m *MongoDB) GracefulShutdown(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
