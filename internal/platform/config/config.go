// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default port of the local API.
	DefaultServerPort = 8787

	// DefaultMaxRequestSize is the default maximum request body size (64KB).
	DefaultMaxRequestSize = 64 << 10

	// DefaultClientRetryMaxAttempts is one attempt: failed backend calls are
	// surfaced to the user, never retried behind their back.
	DefaultClientRetryMaxAttempts = 1

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 2

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 20

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultSearchDebounce is the quiescence window of the search screen.
	DefaultSearchDebounce = 500 * time.Millisecond

	// DefaultSearchLimit caps search results.
	DefaultSearchLimit = 20

	// DefaultReminderHour is the local hour of the daily reminder.
	DefaultReminderHour = 9

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Backend   BackendConfig   `koanf:"backend"   validate:"required"`
	Search    SearchConfig    `koanf:"search"    validate:"required"`
	Reminder  ReminderConfig  `koanf:"reminder"  validate:"required"`
	Share     ShareConfig     `koanf:"share"     validate:"required"`
	Session   SessionConfig   `koanf:"session"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
	Platform    string `koanf:"platform"    validate:"required,oneof=ios android web desktop"`
}

// ServerConfig contains local API server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains outbound HTTP settings for the backend.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
// Only idempotent reads are ever retried.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// BackendConfig locates the managed backend.
type BackendConfig struct {
	Name    string `koanf:"name"     validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
	AnonKey string `koanf:"anon_key" validate:"required"`
}

// SearchConfig tunes the search screen.
type SearchConfig struct {
	Debounce time.Duration `koanf:"debounce" validate:"min=0"`
	Limit    int           `koanf:"limit"    validate:"required,min=1,max=100"`
}

// ReminderConfig describes the daily reminder and the simulated OS permission answer.
type ReminderConfig struct {
	Hour       int    `koanf:"hour"       validate:"min=0,max=23"`
	Minute     int    `koanf:"minute"     validate:"min=0,max=59"`
	Title      string `koanf:"title"      validate:"required"`
	Body       string `koanf:"body"       validate:"required"`
	Permission string `koanf:"permission" validate:"required,oneof=granted denied prompt"`
}

// ShareConfig controls where rendered quote cards go.
type ShareConfig struct {
	OutputDir string `koanf:"output_dir" validate:"required"`
	OutboxDir string `koanf:"outbox_dir" validate:"required"`
}

// SessionConfig locates the local session database.
type SessionConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotevault",
		"app.version":     "dev",
		"app.environment": "local",
		"app.platform":    "desktop",

		"server.port":             DefaultServerPort,
		"server.host":             "127.0.0.1",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "5s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotevault.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotevault",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "15s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "2s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"backend.name":     "backend",
		"backend.base_url": "http://localhost:54321",
		"backend.anon_key": "",

		"search.debounce": DefaultSearchDebounce.String(),
		"search.limit":    DefaultSearchLimit,

		"reminder.hour":       DefaultReminderHour,
		"reminder.minute":     0,
		"reminder.title":      "☀️ Quote of the Day",
		"reminder.body":       "Tap to see today's inspiration!",
		"reminder.permission": "prompt",

		"share.output_dir": "./var/cards",
		"share.outbox_dir": "./var/outbox",

		"session.path": "./var/session.db",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		err := loadFileIfExists(k, fmt.Sprintf("configs/%s.yaml", profile))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// APP_BACKEND_ANON_KEY -> backend.anon.key would split the leaf name, so
	// known multi-word leaves are restored after the underscore mapping.
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// multiWordKeys are leaf names that contain underscores.
var multiWordKeys = []string{
	"read_timeout", "write_timeout", "idle_timeout", "shutdown_timeout", "max_request_size",
	"max_size", "max_backups", "max_age", "service_name", "sampling_rate",
	"max_attempts", "initial_interval", "max_interval", "jitter_factor",
	"circuit_breaker", "max_failures", "half_open_limit",
	"max_idle_conns_per_host", "max_idle_conns", "idle_conn_timeout",
	"base_url", "anon_key", "output_dir", "outbox_dir",
}

// envKey maps APP_SEARCH_DEBOUNCE to search.debounce and
// APP_BACKEND_ANON_KEY to backend.anon_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	for _, leaf := range multiWordKeys {
		key = strings.ReplaceAll(key, leaf, strings.ReplaceAll(leaf, "_", "\x00"))
	}

	key = strings.ReplaceAll(key, "_", ".")

	return strings.ReplaceAll(key, "\x00", "_")
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
