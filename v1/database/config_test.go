package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/gpucatalog/v1/database"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/mariadb"
	"github.com/Aleph-Alpha/gpucatalog/v1/postgres"
)

func TestConfigHelpers(t *testing.T) {
	t.Run("PostgresConfig", func(t *testing.T) {
		cfg := database.PostgresConfig(postgres.Config{
			Connection: postgres.Connection{Host: "localhost", Port: "5432"},
		})

		assert.Equal(t, database.TypePostgres, cfg.Type)
		require.NotNil(t, cfg.Postgres)
		assert.Equal(t, "localhost", cfg.Postgres.Connection.Host)
		assert.Nil(t, cfg.MariaDB)
	})

	t.Run("MariaDBConfig", func(t *testing.T) {
		cfg := database.MariaDBConfig(mariadb.Config{
			Connection: mariadb.Connection{Host: "localhost", Port: "3306"},
		})

		assert.Equal(t, database.TypeMariaDB, cfg.Type)
		require.NotNil(t, cfg.MariaDB)
		assert.Nil(t, cfg.Postgres)
	})
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	log := logger.NewNop()

	_, err := database.NewClient(database.Config{Type: "sqlite"}, log)
	assert.ErrorContains(t, err, "unsupported database type")

	_, err = database.NewClient(database.Config{Type: database.TypePostgres}, log)
	assert.ErrorContains(t, err, "postgres config is required")

	_, err = database.NewClient(database.Config{Type: database.TypeMariaDB}, log)
	assert.ErrorContains(t, err, "mariadb config is required")
}
