package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/gpucatalog/v1/database"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, database.TypeMariaDB, cfg.Relational.Type)
	assert.Equal(t, "localhost", cfg.Relational.MariaDB.Connection.Host)
	assert.Equal(t, "3306", cfg.Relational.MariaDB.Connection.Port)
	assert.Equal(t, "root", cfg.Relational.MariaDB.Connection.User)
	assert.Equal(t, "graphics_cards_db", cfg.Relational.MariaDB.Connection.DbName)
	assert.Equal(t, "27017", cfg.MongoDB.Connection.Port)
	assert.Equal(t, "graphics_cards_db", cfg.MongoDB.Connection.Database)
	assert.False(t, cfg.Filters.Strict)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_PASSWORD", "s3cret")
	t.Setenv("MONGODB_DATABASE", "catalog")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("FILTERS_STRICT", "true")
	t.Setenv("HTTP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Relational.MariaDB.Connection.Host)
	assert.Equal(t, "3307", cfg.Relational.MariaDB.Connection.Port)
	assert.Equal(t, "s3cret", cfg.Relational.MariaDB.Connection.Password)
	assert.Equal(t, "root", cfg.Relational.MariaDB.Connection.User, "unset variables keep the default")
	assert.Equal(t, "catalog", cfg.MongoDB.Connection.Database)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Filters.Strict)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_YAMLWithExpansion(t *testing.T) {
	t.Setenv("PG_PASSWORD", "from-env")
	path := writeConfig(t, `
http:
  port: 6000
relational:
  driver: postgres
  postgres:
    connection:
      host: pg.internal
      password: ${PG_PASSWORD}
      db_name: ${PG_DB:-cards}
mongodb:
  connection:
    uri: mongodb://mongo.internal:27018
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.HTTP.Port)
	assert.Equal(t, database.TypePostgres, cfg.Relational.Type)
	assert.Equal(t, "pg.internal", cfg.Relational.Postgres.Connection.Host)
	assert.Equal(t, "5432", cfg.Relational.Postgres.Connection.Port, "defaults survive partial YAML")
	assert.Equal(t, "from-env", cfg.Relational.Postgres.Connection.Password)
	assert.Equal(t, "cards", cfg.Relational.Postgres.Connection.DbName)
	assert.Equal(t, "mongodb://mongo.internal:27018", cfg.MongoDB.Connection.ConnectionURI())
}

func TestLoad_EnvBeatsYAML(t *testing.T) {
	t.Setenv("RELATIONAL_DRIVER", "mariadb")
	path := writeConfig(t, "relational:\n  driver: postgres\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, database.TypeMariaDB, cfg.Relational.Type)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "http: [not, a, map]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"http port zero", func(c *Config) { c.HTTP.Port = 0 }},
		{"http port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Relational.Type = "sqlite" }},
		{"bad mysql port", func(c *Config) { c.Relational.MariaDB.Connection.Port = "abc" }},
		{"bad postgres port", func(c *Config) {
			c.Relational.Type = database.TypePostgres
			c.Relational.Postgres.Connection.Port = "0"
		}},
		{"bad mongo port", func(c *Config) { c.MongoDB.Connection.Port = "99999" }},
		{"missing mongo database", func(c *Config) { c.MongoDB.Connection.Database = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Relational.Type = "mysql"
	assert.NoError(t, cfg.Validate(), "mysql is accepted as an alias")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SET_VAR", "value")

	got := string(expandEnvVars([]byte("a=${SET_VAR} b=${UNSET_VAR_X} c=${UNSET_VAR_X:-fallback}")))
	assert.Equal(t, "a=value b= c=fallback", got)
}
