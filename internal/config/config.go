// Package config loads CoverageGuide settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Text-generation providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Session store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Error variables for configuration validation
var (
	ErrInvalidVariant     = errors.New("invalid GUIDE_VARIANT")
	ErrInvalidProvider    = errors.New("invalid GENAI_PROVIDER")
	ErrInvalidBackend     = errors.New("invalid SESSION_BACKEND")
	ErrInvalidTemperature = errors.New("GENAI_TEMPERATURE must be between 0 and 2")
	ErrInvalidTTL         = errors.New("SESSION_TTL must be positive")
	ErrInvalidLogLevel    = errors.New("invalid LOG_LEVEL")
	ErrPersistentDSN      = errors.New("SQLITE_DSN must name an in-memory database")
)

// Config holds environment configuration.
type Config struct {
	Variant          string        `env:"GUIDE_VARIANT"        envDefault:"consumer"`
	APIAddr          string        `env:"API_ADDR"             envDefault:":8080"`
	Provider         string        `env:"GENAI_PROVIDER"       envDefault:"openai"`
	OpenAIKey        string        `env:"OPENAI_API_KEY"`
	AnthropicKey     string        `env:"ANTHROPIC_API_KEY"`
	Model            string        `env:"GENAI_MODEL"`
	ImageModel       string        `env:"GENAI_IMAGE_MODEL"`
	Temperature      float64       `env:"GENAI_TEMPERATURE"    envDefault:"0.7"`
	SystemPromptFile string        `env:"SYSTEM_PROMPT_FILE"`
	SessionBackend   string        `env:"SESSION_BACKEND"      envDefault:"memory"`
	SQLiteDSN        string        `env:"SQLITE_DSN"           envDefault:":memory:"`
	SessionTTL       time.Duration `env:"SESSION_TTL"          envDefault:"2h"`
	AllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	OTelEndpoint     string        `env:"OTEL_ENDPOINT"`
	LogLevel         string        `env:"LOG_LEVEL"            envDefault:"debug"`
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("config.Load: no .env file loaded", "error", err)
	} else {
		slog.Debug("config.Load: loaded .env file")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	slog.Debug("config.Load: environment parsed",
		"variant", cfg.Variant,
		"apiAddr", cfg.APIAddr,
		"provider", cfg.Provider,
		"openaiKeySet", cfg.OpenAIKey != "",
		"anthropicKeySet", cfg.AnthropicKey != "",
		"sessionBackend", cfg.SessionBackend,
		"sqliteDSN", cfg.SQLiteDSN,
		"sessionTTL", cfg.SessionTTL,
		"otelEndpointSet", cfg.OTelEndpoint != "")
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if !models.IsValidVariant(models.Variant(c.Variant)) {
		return fmt.Errorf("%w: %q", ErrInvalidVariant, c.Variant)
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}
	switch c.SessionBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.SessionBackend)
	}
	if c.SessionBackend == BackendSQLite && !IsMemoryDSN(c.SQLiteDSN) {
		return fmt.Errorf("%w: %q", ErrPersistentDSN, c.SQLiteDSN)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return ErrInvalidTemperature
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidTTL
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// IsMemoryDSN reports whether dsn opens an in-memory SQLite database. Sessions never outlive the
// process.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelDebug, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicKey
	}
	return c.OpenAIKey
}
