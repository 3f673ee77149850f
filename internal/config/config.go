// Package config provides environment-driven configuration for the stockline server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stockline/stockline/internal/models"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Identity providers.
const (
	AuthProviderAPIKey = "apikey"
	AuthProviderJWT    = "jwt"
)

// Language model providers.
const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

// Config holds all application configuration values.
type Config struct {
	DatabaseURL        Secret
	Port               string
	ListenHost         string
	MetricsPort        string
	CORSOrigins        []string
	LogLevel           string
	DBMaxConns         int
	DBStatementTimeout time.Duration

	AuthProvider string
	JWTSecret    Secret

	LLMProvider string
	LLMAPIKey   Secret
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration

	AssistantName string
}

// Load reads configuration from environment variables with sensible defaults.
// Validation failures wrap models.ErrConfiguration.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   Secret(envOrDefault("DATABASE_URL", "")),
		Port:          envOrDefault("PORT", "3030"),
		ListenHost:    envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:   envOrDefault("METRICS_PORT", "9091"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		AuthProvider:  strings.ToLower(envOrDefault("AUTH_PROVIDER", AuthProviderAPIKey)),
		JWTSecret:     Secret(envOrDefault("JWT_SECRET", "")),
		LLMProvider:   strings.ToLower(envOrDefault("LLM_PROVIDER", LLMProviderOpenAI)),
		LLMAPIKey:     Secret(envOrDefault("LLM_API_KEY", "")),
		LLMBaseURL:    envOrDefault("LLM_BASE_URL", ""),
		AssistantName: envOrDefault("ASSISTANT_NAME", "Stockline Assistant"),
	}

	cfg.LLMModel = envOrDefault("LLM_MODEL", defaultModel(cfg.LLMProvider))

	maxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "10"))
	if err != nil || maxConns < 2 || maxConns > 200 {
		return nil, fmt.Errorf("%w: DB_MAX_CONNS must be an integer between 2 and 200", models.ErrConfiguration)
	}
	cfg.DBMaxConns = maxConns

	timeoutMS, err := strconv.Atoi(envOrDefault("DB_STATEMENT_TIMEOUT_MS", "15000"))
	if err != nil || timeoutMS < 100 || timeoutMS > 600000 {
		return nil, fmt.Errorf("%w: DB_STATEMENT_TIMEOUT_MS must be an integer between 100 and 600000", models.ErrConfiguration)
	}
	cfg.DBStatementTimeout = time.Duration(timeoutMS) * time.Millisecond

	llmTimeout, err := strconv.Atoi(envOrDefault("LLM_TIMEOUT_SECONDS", "60"))
	if err != nil || llmTimeout < 1 || llmTimeout > 600 {
		return nil, fmt.Errorf("%w: LLM_TIMEOUT_SECONDS must be an integer between 1 and 600", models.ErrConfiguration)
	}
	cfg.LLMTimeout = time.Duration(llmTimeout) * time.Second

	origins := envOrDefault("CORS_ORIGINS", "*")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConfiguration, err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

// AllowAllOrigins reports whether CORS is configured with the wildcard origin.
func (c *Config) AllowAllOrigins() bool {
	return len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*"
}

func defaultModel(provider string) string {
	if provider == LLMProviderGemini {
		return "gemini-1.5-flash"
	}

	return "gpt-4o-mini"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
