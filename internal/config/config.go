// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with defaults that reproduce
// the classic behavior (scan ".", export "output.html") and validates all settings
// on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Error policies for a load pass.
const (
	PolicyFail     = "fail"
	PolicySkipRow  = "skip-row"
	PolicySkipFile = "skip-file"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Prices  PricesConfig
	Load    LoadConfig
	Export  ExportConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
	Session SessionConfig
}

// PricesConfig describes where price lists live and how they are encoded.
type PricesConfig struct {
	// Dir is the directory scanned for price lists (default: current directory)
	Dir string `envconfig:"PRICES_DIR" default:"." validate:"required"`

	// Keyword must appear in a file name for the file to be loaded (default: price)
	Keyword string `envconfig:"PRICES_KEYWORD" default:"price" validate:"required"`

	// Encoding is a WHATWG charset label such as utf-8, windows-1251 or koi8-r
	Encoding string `envconfig:"PRICES_ENCODING" default:"utf-8" validate:"required"`
}

// LoadConfig holds load pass settings.
type LoadConfig struct {
	// ErrorPolicy decides what a bad row or header does: fail, skip-row, skip-file
	ErrorPolicy string `envconfig:"LOAD_ERROR_POLICY" default:"fail" validate:"oneof=fail skip-row skip-file"`

	// Workers is the number of files parsed in parallel (default: 1)
	Workers int `envconfig:"LOAD_WORKERS" default:"1" validate:"min=1,max=64"`

	// Timeout bounds a single load pass (default: 5m)
	Timeout time.Duration `envconfig:"LOAD_TIMEOUT" default:"5m" validate:"gt=0"`
}

// ExportConfig holds export destinations.
type ExportConfig struct {
	// HTMLPath is overwritten with the catalog on exit (default: output.html)
	HTMLPath string `envconfig:"EXPORT_HTML_PATH" default:"output.html" validate:"required"`

	// XLSXPath enables the spreadsheet export when non-empty
	XLSXPath string `envconfig:"EXPORT_XLSX_PATH"`
}

// HTTPConfig holds settings for the optional HTTP view.
type HTTPConfig struct {
	Enabled bool `envconfig:"HTTP_ENABLED" default:"false"`

	// Addr is the listen address in host:port form (default: 127.0.0.1:8080)
	Addr string `envconfig:"HTTP_ADDR" default:"127.0.0.1:8080" validate:"required,hostname_port"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s" validate:"gte=0"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// RateLimit is requests per minute per IP; 0 disables limiting (default: 100)
	RateLimit int `envconfig:"HTTP_RATE_LIMIT" default:"100" validate:"gte=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`

	// Format is the log format: text or json (default: text)
	Format string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
}

// SessionConfig holds interactive session settings.
type SessionConfig struct {
	// ExitWord ends the search loop (default: exit)
	ExitWord string `envconfig:"SESSION_EXIT_WORD" default:"exit" validate:"required"`
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Prices: {Dir: %q, Keyword: %q, Encoding: %q}, ",
		c.Prices.Dir, c.Prices.Keyword, c.Prices.Encoding))
	b.WriteString(fmt.Sprintf("Load: {ErrorPolicy: %q, Workers: %d, Timeout: %s}, ",
		c.Load.ErrorPolicy, c.Load.Workers, c.Load.Timeout))
	b.WriteString(fmt.Sprintf("Export: {HTMLPath: %q, XLSXPath: %q}, ",
		c.Export.HTMLPath, c.Export.XLSXPath))
	b.WriteString(fmt.Sprintf("HTTP: {Enabled: %v, Addr: %q}, ", c.HTTP.Enabled, c.HTTP.Addr))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
