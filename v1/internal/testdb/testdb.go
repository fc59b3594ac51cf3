// Package testdb starts throwaway database containers for integration
// tests. Every helper skips the calling test under -short.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
	"github.com/Aleph-Alpha/gpucatalog/v1/mongodb"
	"github.com/Aleph-Alpha/gpucatalog/v1/postgres"
)

const (
	user     = "testuser"
	password = "testpass"
	dbName   = "testdb"

	readyTimeout = 60 * time.Second
)

// MySQL starts mysql:8.0 and returns a config pointing at it.
func MySQL(t *testing.T) mariadb.Config {
	t.Helper()
	host, port := start(t, testcontainers.ContainerRequest{
		Image: "mysql:8.0",
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": password,
			"MYSQL_USER":          user,
			"MYSQL_PASSWORD":      password,
			"MYSQL_DATABASE":      dbName,
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(readyTimeout),
	}, "3306")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, port, dbName)
	waitForSQL(t, "mysql", dsn)

	return mariadb.Config{
		Connection: mariadb.Connection{
			Host:     host,
			Port:     port,
			User:     user,
			Password: password,
			DbName:   dbName,
		},
	}
}

// Postgres starts postgres:15 and returns a config pointing at it.
func Postgres(t *testing.T) postgres.Config {
	t.Helper()
	host, port := start(t, testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(readyTimeout),
	}, "5432")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbName)
	waitForSQL(t, "postgres", dsn)

	return postgres.Config{
		Connection: postgres.Connection{
			Host:     host,
			Port:     port,
			User:     user,
			Password: password,
			DbName:   dbName,
			SSLMode:  "disable",
		},
	}
}

// Mongo starts mongo:7 without authentication and returns a config
// pointing at it.
func Mongo(t *testing.T) mongodb.Config {
	t.Helper()
	host, port := start(t, testcontainers.ContainerRequest{
		Image:      "mongo:7",
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(readyTimeout),
	}, "27017")

	cfg := mongodb.Config{
		Connection: mongodb.Connection{
			Host:     host,
			Port:     port,
			Database: dbName,
		},
	}
	waitForMongo(t, cfg.Connection.ConnectionURI())
	return cfg
}

// start binds the container's port to a free host port and terminates the
// container when the test ends.
func start(t *testing.T, req testcontainers.ContainerRequest, containerPort string) (string, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	free, err := getFreePort()
	if err != nil {
		t.Fatalf("could not get free port: %v", err)
	}

	exposed := nat.Port(containerPort + "/tcp")
	req.ExposedPorts = []string{string(exposed)}
	req.HostConfigModifier = func(cfg *container.HostConfig) {
		cfg.PortBindings = nat.PortMap{
			exposed: []nat.PortBinding{{HostPort: fmt.Sprintf("%d", free)}},
		}
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start %s container: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate %s container: %v", req.Image, err)
		}
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %v", err)
	}

	// The mapped port can differ from the requested binding.
	mapped, err := c.MappedPort(ctx, exposed)
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return host, mapped.Port()
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func waitForSQL(t *testing.T, driver, dsn string) {
	t.Helper()
	deadline := time.Now().Add(readyTimeout)
	for {
		db, err := sql.Open(driver, dsn)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
		}
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%s not ready: %v", driver, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func waitForMongo(t *testing.T, uri string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	for {
		if err = client.Ping(ctx, nil); err == nil {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("mongo not ready: %v", err)
		case <-time.After(500 * time.Millisecond):
		}
	}
}
