package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateAuth(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	if !isLoopback(dbURL.Hostname()) && dbURL.Query().Get("sslmode") == "disable" {
		return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbURL.Hostname())
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Loopback for local runs; 0.0.0.0/:: for containers behind an external boundary.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	metricsPort, err := strconv.Atoi(c.MetricsPort)
	if err != nil {
		return fmt.Errorf("METRICS_PORT must be a valid integer: %w", err)
	}

	if metricsPort < 1 || metricsPort > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 1 and 65535")
	}

	if metricsPort == port {
		return fmt.Errorf("METRICS_PORT must differ from PORT")
	}

	return nil
}

func (c *Config) validateCORS() error {
	if c.AllowAllOrigins() {
		return nil
	}

	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS wildcard '*' must be the only entry")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateAuth() error {
	switch c.AuthProvider {
	case AuthProviderAPIKey:
	case AuthProviderJWT:
		if c.JWTSecret.Value() == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER is jwt")
		}
		if len(c.JWTSecret.Value()) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be 'apikey' or 'jwt', got %q", c.AuthProvider)
	}

	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLMProvider {
	case LLMProviderOpenAI, LLMProviderGemini:
	default:
		return fmt.Errorf("LLM_PROVIDER must be 'openai' or 'gemini', got %q", c.LLMProvider)
	}

	if c.LLMAPIKey.Value() == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}

	if c.LLMBaseURL != "" {
		u, err := url.ParseRequestURI(c.LLMBaseURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("LLM_BASE_URL is not a valid URL: %q", c.LLMBaseURL)
		}
		if u.Scheme != "https" && !isLoopback(u.Hostname()) {
			return fmt.Errorf("LLM_BASE_URL must use HTTPS for non-localhost endpoints")
		}
	}

	return nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
