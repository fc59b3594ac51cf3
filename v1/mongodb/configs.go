package mongodb

import "time"

// Config holds the MongoDB connection settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection describes the server and database.
//
// When URI is set it wins over Host and Port.
type Connection struct {
	URI      string `yaml:"uri" envconfig:"MONGODB_URI"`
	Host     string `yaml:"host" envconfig:"MONGODB_HOST"`
	Port     string `yaml:"port" envconfig:"MONGODB_PORT"`
	Username string `yaml:"username" envconfig:"MONGODB_USERNAME"`
	Password string `yaml:"password" envconfig:"MONGODB_PASSWORD"`
	Database string `yaml:"database" envconfig:"MONGODB_DATABASE"`

	// AuthSource defaults to "admin" when credentials are given.
	AuthSource string `yaml:"auth_source" envconfig:"MONGODB_AUTH_SOURCE"`
}

// ConnectionDetails tunes the driver.
type ConnectionDetails struct {
	// MaxPoolSize defaults to 1.
	MaxPoolSize uint64 `yaml:"max_pool_size" envconfig:"MONGODB_MAX_POOL_SIZE"`

	// ServerSelectionTimeout defaults to 5s.
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" envconfig:"MONGODB_SERVER_SELECTION_TIMEOUT"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"MONGODB_CONNECT_TIMEOUT"`
}
