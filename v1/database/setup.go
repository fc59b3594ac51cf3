package database

import (
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
	"github.com/Aleph-Alpha/gpucatalog/v1/postgres"
)

var (
	_ Client = (*mariadb.MariaDB)(nil)
	_ Client = (*postgres.Postgres)(nil)
)

// NewClient connects to the backend named by cfg.Type.
func NewClient(cfg Config, log logger.Logger) (Client, error) {
	switch strings.ToLower(cfg.Type) {
	case TypePostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres config is required when type=postgres")
		}
		pg, err := postgres.NewPostgres(*cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return pg, nil

	case TypeMariaDB, "mysql":
		if cfg.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=mariadb")
		}
		db, err := mariadb.NewMariaDB(*cfg.MariaDB, log)
		if err != nil {
			return nil, err
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s (must be 'postgres' or 'mariadb')", cfg.Type)
	}
}
