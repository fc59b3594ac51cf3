package database

import (
	"github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
	"github.com/Aleph-Alpha/gpucatalog/v1/postgres"
)

// Supported values of Config.Type.
const (
	TypeMariaDB  = "mariadb"
	TypePostgres = "postgres"
)

// Config selects and configures the relational backend.
type Config struct {
	// Type is "mariadb" (also used for MySQL) or "postgres".
	Type string `yaml:"driver" envconfig:"RELATIONAL_DRIVER"`

	// Postgres configuration (used when Type = "postgres")
	Postgres *postgres.Config `yaml:"postgres" ignored:"true"`

	// MariaDB configuration (used when Type = "mariadb")
	MariaDB *mariadb.Config `yaml:"mariadb" ignored:"true"`
}

// PostgresConfig creates a database.Config for PostgreSQL.
func PostgresConfig(cfg postgres.Config) Config {
	return Config{
		Type:     TypePostgres,
		Postgres: &cfg,
	}
}

// MariaDBConfig creates a database.Config for MariaDB/MySQL.
func MariaDBConfig(cfg mariadb.Config) Config {
	return Config{
		Type:    TypeMariaDB,
		MariaDB: &cfg,
	}
}
