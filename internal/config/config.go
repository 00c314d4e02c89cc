// Package config provides centralized configuration management for crmdash.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Inquiry InquiryConfig
	Watch   WatchConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// InquiryConfig holds workbook conversion settings.
type InquiryConfig struct {
	// Source is the workbook to convert
	Source string `env:"INQUIRY_SOURCE" default:"IIPL - CRM (Ap25-Ma26) (3).xlsx"`

	// Sheet is the sheet holding inquiries (default: INQUIRY)
	Sheet string `env:"INQUIRY_SHEET" default:"INQUIRY"`

	// MaxRecords is the number of valid rows to keep (default: 282)
	MaxRecords int `env:"INQUIRY_MAX_RECORDS" default:"282"`

	// SkipRows is the number of title rows above the header row (default: 1)
	SkipRows int `env:"INQUIRY_SKIP_ROWS" default:"1"`

	// Output is the JSON file written for the dashboard (default: iipl_data.json)
	Output string `env:"INQUIRY_OUTPUT" default:"iipl_data.json"`

	// Pretty enables indented JSON output (default: true)
	Pretty bool `env:"INQUIRY_PRETTY" default:"true"`
}

// WatchConfig holds settings for regenerating the output.
type WatchConfig struct {
	// Enabled re-runs the conversion when the source workbook changes (default: false)
	Enabled bool `env:"WATCH_ENABLED" envAlt:"INQUIRY_WATCH" default:"false"`

	// Debounce is the quiet period after a change before converting (default: 500ms)
	Debounce time.Duration `env:"WATCH_DEBOUNCE" default:"500ms"`

	// Schedule is an optional cron expression for periodic conversion
	Schedule string `env:"REFRESH_SCHEDULE"`
}

// ServerConfig holds dashboard HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: all interfaces)
	Host string `env:"SERVER_HOST"`

	// Port is the port to listen on (default: 8000)
	Port int `env:"SERVER_PORT" default:"8000"`

	// Dir is the directory served to the browser (default: .)
	Dir string `env:"SERVER_DIR" default:"."`

	// OpenBrowser opens the dashboard URL once the server starts (default: true)
	OpenBrowser bool `env:"SERVER_OPEN_BROWSER" default:"true"`

	// BrowserDelay is the wait before opening the browser (default: 1.5s)
	BrowserDelay time.Duration `env:"SERVER_BROWSER_DELAY" default:"1500ms"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// SeqURL forwards logs to a Seq server when set
	SeqURL string `env:"LOG_SEQ_URL"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// URL returns the address a local browser should open.
func (c *ServerConfig) URL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + host + ":" + strconv.Itoa(c.Port)
}
