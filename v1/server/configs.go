package server

import "time"

// DefaultPort is the port the original service listened on.
const DefaultPort = 5000

// Config configures the HTTP listener.
type Config struct {
	Host string `yaml:"host" envconfig:"HTTP_HOST"`
	Port int    `yaml:"port" envconfig:"HTTP_PORT"`

	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"HTTP_SHUTDOWN_TIMEOUT"`

	// CORSAllowedOrigins defaults to every origin.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" envconfig:"HTTP_CORS_ALLOWED_ORIGINS"`

	// EnableTracing wraps every request in an OpenTelemetry server span.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"HTTP_ENABLE_TRACING"`
}
