// Package config loads the service configuration.
//
// Values are layered: Default, then an optional YAML file in which ${VAR}
// and ${VAR:-default} are expanded, then environment variables named by the
// envconfig tags of each section (MYSQL_HOST, MONGODB_PORT, HTTP_PORT, ...).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/gpucatalog/v1/database"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
	"github.com/Aleph-Alpha/gpucatalog/v1/metrics"
	"github.com/Aleph-Alpha/gpucatalog/v1/mongodb"
	"github.com/Aleph-Alpha/gpucatalog/v1/postgres"
	"github.com/Aleph-Alpha/gpucatalog/v1/server"
	"github.com/Aleph-Alpha/gpucatalog/v1/tracer"
)

// ServiceName names the service in logs, metrics and traces.
const ServiceName = "gpucatalog"

const defaultDatabase = "graphics_cards_db"

// Config is the whole service configuration.
type Config struct {
	HTTP       server.Config   `yaml:"http"`
	Filters    filter.Config   `yaml:"filters"`
	Relational database.Config `yaml:"relational"`
	MongoDB    mongodb.Config  `yaml:"mongodb"`
	Logger     logger.Config   `yaml:"logger"`
	Metrics    metrics.Config  `yaml:"metrics"`
	Tracer     tracer.Config   `yaml:"tracer"`
}

// Default returns a configuration for local MySQL and MongoDB servers.
func Default() Config {
	return Config{
		HTTP: server.Config{Port: server.DefaultPort},
		Relational: database.Config{
			Type: database.TypeMariaDB,
			MariaDB: &mariadb.Config{
				Connection: mariadb.Connection{
					Host:           "localhost",
					Port:           "3306",
					User:           "root",
					DbName:         defaultDatabase,
					CreateDatabase: true,
				},
			},
			Postgres: &postgres.Config{
				Connection: postgres.Connection{
					Host:    "localhost",
					Port:    "5432",
					User:    "postgres",
					DbName:  defaultDatabase,
					SSLMode: "disable",
				},
			},
		},
		MongoDB: mongodb.Config{
			Connection: mongodb.Connection{
				Host:     "localhost",
				Port:     "27017",
				Database: defaultDatabase,
			},
		},
		Logger: logger.Config{Level: logger.Info, ServiceName: ServiceName},
		Metrics: metrics.Config{
			Address:                 metrics.DefaultMetricsAddress,
			EnableDefaultCollectors: true,
			Namespace:               ServiceName,
			ServiceName:             ServiceName,
		},
		Tracer: tracer.Config{ServiceName: ServiceName, AppEnv: "local"},
	}
}

// Load layers path (optional) and the environment over Default and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv runs envconfig over each flat section so variables keep their
// bare names.
func (c *Config) applyEnv() error {
	if c.Relational.MariaDB == nil {
		c.Relational.MariaDB = &mariadb.Config{}
	}
	if c.Relational.Postgres == nil {
		c.Relational.Postgres = &postgres.Config{}
	}

	sections := []interface{}{
		&c.HTTP,
		&c.Filters,
		&c.Relational,
		&c.Relational.MariaDB.Connection,
		&c.Relational.MariaDB.ConnectionDetails,
		&c.Relational.Postgres.Connection,
		&c.Relational.Postgres.ConnectionDetails,
		&c.MongoDB.Connection,
		&c.MongoDB.ConnectionDetails,
		&c.Logger,
		&c.Metrics,
		&c.Tracer,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks ports and the relational driver.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch strings.ToLower(c.Relational.Type) {
	case database.TypeMariaDB, "mysql":
		if c.Relational.MariaDB == nil {
			return fmt.Errorf("relational.mariadb is required")
		}
		if err := validPort("relational.mariadb.connection.port", c.Relational.MariaDB.Connection.Port); err != nil {
			return err
		}
	case database.TypePostgres:
		if c.Relational.Postgres == nil {
			return fmt.Errorf("relational.postgres is required")
		}
		if err := validPort("relational.postgres.connection.port", c.Relational.Postgres.Connection.Port); err != nil {
			return err
		}
	default:
		return fmt.Errorf("relational.driver must be %q or %q, got %q",
			database.TypeMariaDB, database.TypePostgres, c.Relational.Type)
	}

	if c.MongoDB.Connection.URI == "" {
		if err := validPort("mongodb.connection.port", c.MongoDB.Connection.Port); err != nil {
			return err
		}
	}
	if c.MongoDB.Connection.Database == "" {
		return fmt.Errorf("mongodb.connection.database is required")
	}
	return nil
}

func validPort(field, port string) error {
	if port == "" {
		return nil
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %q", field, port)
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{[^}]+\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with their values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, fallback, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = fallback
		}
		return []byte(val)
	})
}
