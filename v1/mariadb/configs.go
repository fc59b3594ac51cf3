package mariadb

import "time"

// Config holds the MariaDB/MySQL connection settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection describes where and how to connect.
type Connection struct {
	Host     string `yaml:"host" envconfig:"MYSQL_HOST"`
	Port     string `yaml:"port" envconfig:"MYSQL_PORT"`
	User     string `yaml:"user" envconfig:"MYSQL_USER"`
	Password string `yaml:"password" envconfig:"MYSQL_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"MYSQL_DATABASE"`

	// Charset defaults to utf8mb4.
	Charset string `yaml:"charset" envconfig:"MYSQL_CHARSET"`

	// Loc is the time zone used to interpret DATETIME values. Defaults to UTC.
	Loc string `yaml:"loc" envconfig:"MYSQL_LOC"`

	// TLS is passed through as the tls DSN parameter ("true", "skip-verify", ...).
	TLS string `yaml:"tls" envconfig:"MYSQL_TLS"`

	// Timeout, ReadTimeout and WriteTimeout use Go duration syntax ("5s").
	Timeout      string `yaml:"timeout" envconfig:"MYSQL_TIMEOUT"`
	ReadTimeout  string `yaml:"read_timeout" envconfig:"MYSQL_READ_TIMEOUT"`
	WriteTimeout string `yaml:"write_timeout" envconfig:"MYSQL_WRITE_TIMEOUT"`

	// CreateDatabase creates DbName on first connect when the server reports
	// it as unknown.
	CreateDatabase bool `yaml:"create_database" envconfig:"MYSQL_CREATE_DATABASE"`
}

// ConnectionDetails configures the database/sql pool.
type ConnectionDetails struct {
	// MaxOpenConns defaults to 1: one long-lived connection per store.
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MYSQL_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"MYSQL_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"MYSQL_CONN_MAX_LIFETIME"`
}
