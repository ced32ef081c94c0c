// Package config provides centralized configuration management for teamtab.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	UI      UIConfig
	Upload  UploadConfig
	Remote  RemoteConfig
	Load    LoadConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// UIConfig holds settings of the local operator page.
type UIConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"UI_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 5173)
	Port int `env:"UI_PORT" default:"5173"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"UI_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"UI_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"UI_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"UI_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"UI_REQUEST_TIMEOUT" default:"60s"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"UI_ENABLE_CSP" default:"true"`
}

// UploadConfig holds JSON file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`
}

// RemoteConfig holds settings of the remote team/role endpoint.
type RemoteConfig struct {
	// BaseURL is the endpoint root; teams are read from {BaseURL}/teams
	BaseURL string `env:"REMOTE_BASE_URL"`

	// Token is sent as a bearer token when set
	Token string `env:"REMOTE_TOKEN" envAlt:"API_TOKEN"`

	// Timeout bounds each HTTP request (default: 30s)
	Timeout time.Duration `env:"REMOTE_TIMEOUT" default:"30s"`

	// MaxConcurrent is the number of per-team role requests in flight (default: 4)
	MaxConcurrent int `env:"REMOTE_MAX_CONCURRENT" default:"4"`

	// RetryCount is how often a failed request is retried (default: 0)
	RetryCount int `env:"REMOTE_RETRY_COUNT" default:"0"`
}

// LoadConfig holds limits on source loads.
type LoadConfig struct {
	// MaxConcurrent is the maximum number of loads running at once (default: 2)
	MaxConcurrent int `env:"LOAD_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long a load waits for a slot (default: 10s)
	MaxWaitTime time.Duration `env:"LOAD_MAX_WAIT_TIME" default:"10s"`
}

// ExportConfig holds table and export settings.
type ExportConfig struct {
	// DefaultLayout is the layout used when a source does not name one (default: embedded)
	DefaultLayout string `env:"EXPORT_DEFAULT_LAYOUT" default:"embedded"`

	// StatusTTL is how long the copy status message stays visible (default: 2.5s)
	StatusTTL time.Duration `env:"EXPORT_STATUS_TTL" default:"2500ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the listen address in host:port format.
func (c *UIConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
