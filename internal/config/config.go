package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	CatalogDefaultPage  int
	CatalogDefaultLimit int
	CatalogMaxLimit     int
	CatalogCacheTTL     time.Duration

	CartTTL time.Duration

	CurrencyCode   string
	CurrencyLocale string
}

// Load reads configuration from environment variables and optional .env files.
// Every value has a default; the service boots with an empty environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:              valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:            strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins:  splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CatalogDefaultPage:  intOrDefault(k.String("CATALOG_DEFAULT_PAGE"), 1),
		CatalogDefaultLimit: intOrDefault(k.String("CATALOG_DEFAULT_LIMIT"), 20),
		CatalogMaxLimit:     intOrDefault(k.String("CATALOG_MAX_LIMIT"), 100),
		CatalogCacheTTL:     parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		CartTTL:             parseDuration(k.String("CART_TTL"), "168h"),
		CurrencyCode:        valueOrDefault(k.String("CURRENCY_CODE"), "CLP"),
		CurrencyLocale:      valueOrDefault(k.String("CURRENCY_LOCALE"), "es-CL"),
	}

	if cfg.CatalogDefaultPage < 1 {
		cfg.CatalogDefaultPage = 1
	}
	if cfg.CatalogDefaultLimit < 1 {
		cfg.CatalogDefaultLimit = 20
	}
	if cfg.CatalogMaxLimit < cfg.CatalogDefaultLimit {
		cfg.CatalogMaxLimit = cfg.CatalogDefaultLimit
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func intOrDefault(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(trimmed, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
