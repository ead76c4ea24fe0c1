// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	defaultPort       = "8080"
	defaultDBPath     = "./data/splitter.db"
	defaultLogLevel   = "info"
	defaultLockTTL    = "30s"
	defaultOCRURL     = "https://api.openai.com/v1/chat/completions"
	defaultOCRModel   = "gpt-4o"
	defaultOCRTimeout = "60s"
)

// Config holds the server configuration.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// RedisURL enables the Redis receipt lock when set.
	RedisURL string
	LockTTL  time.Duration

	OpenAIAPIKey string
	OpenAIAPIURL string
	OCRModel     string
	OCRTimeout   time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, after merging a .env
// file from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	cfg := &Config{
		Port:               orDefault(k.String("PORT"), defaultPort),
		DBPath:             orDefault(k.String("DB_PATH"), defaultDBPath),
		LogLevel:           strings.ToLower(orDefault(k.String("LOG_LEVEL"), defaultLogLevel)),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		LockTTL:            duration(k.String("LOCK_TTL"), defaultLockTTL),
		OpenAIAPIKey:       strings.TrimSpace(k.String("OPENAI_API_KEY")),
		OpenAIAPIURL:       orDefault(k.String("OPENAI_API_URL"), defaultOCRURL),
		OCRModel:           orDefault(k.String("OCR_MODEL"), defaultOCRModel),
		OCRTimeout:         duration(k.String("OCR_TIMEOUT"), defaultOCRTimeout),
		CORSAllowedOrigins: splitList(orDefault(k.String("CORS_ALLOWED_ORIGINS"), "*")),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server binds to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// duration parses value, falling back to fallback when it is empty or bad.
func duration(value, fallback string) time.Duration {
	d, err := time.ParseDuration(orDefault(value, fallback))
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadForTests sets the given variables, loads, and restores the previous
// environment. An empty value unsets the variable for the duration.
func LoadForTests(vars map[string]string) (*Config, error) {
	previous := make(map[string]*string, len(vars))
	for key, value := range vars {
		if old, ok := os.LookupEnv(key); ok {
			previous[key] = &old
		} else {
			previous[key] = nil
		}
		if err := setEnv(key, value); err != nil {
			return nil, err
		}
	}
	defer func() {
		for key, old := range previous {
			if old == nil {
				_ = os.Unsetenv(key)
			} else {
				_ = os.Setenv(key, *old)
			}
		}
	}()
	return Load()
}

func setEnv(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}
