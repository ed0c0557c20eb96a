// Package config provides application configuration management. It loads
// settings from environment variables, with .env support for local
// development, and validates them before the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Directory for the SQLite database and local backups

	// Generation Configuration
	Year int // Calendar year the planner generates against

	// Ideas Generator (LLM) Configuration
	GeminiAPIKey        string // Gemini API key for the ideas generator
	GroqAPIKey          string // Groq API key (fallback LLM provider)
	GeminiModel         string // Override for the Gemini model (empty = default)
	GroqModel           string // Override for the Groq model (empty = default)
	LLMPrimaryProvider  string // "gemini" or "groq" (default: "gemini")
	LLMFallbackProvider string // "gemini" or "groq" (default: "groq")
	LLMTimeout          time.Duration

	// Backup Configuration
	BackupInterval  time.Duration // How often the snapshot job runs (0 = disabled)
	BackupRetention int           // How many compressed snapshots to keep

	// Rate Limiting (per client IP, on the mutating endpoints)
	RateLimitBurst      float64 // Token bucket capacity (0 = disabled)
	RateLimitRefillRate float64 // Tokens refilled per second

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Sentry Configuration
	SentryDSN              string
	SentryEnvironment      string
	SentrySampleRate       float64
	SentryTracesSampleRate float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir: getEnv("DATA_DIR", getDefaultDataDir()),

		Year: getIntEnv("AGENDA_YEAR", time.Now().Year()),

		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:          getEnv("GROQ_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", ""),
		GroqModel:           getEnv("GROQ_MODEL", ""),
		LLMPrimaryProvider:  getEnv("LLM_PRIMARY_PROVIDER", "gemini"),
		LLMFallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", "groq"),
		LLMTimeout:          getDurationEnv("LLM_TIMEOUT", 30*time.Second),

		BackupInterval:  getDurationEnv("BACKUP_INTERVAL", 6*time.Hour),
		BackupRetention: getIntEnv("BACKUP_RETENTION", 14),

		RateLimitBurst:      getFloatEnv("RATE_LIMIT_BURST", 6),
		RateLimitRefillRate: getFloatEnv("RATE_LIMIT_REFILL_RATE", 0.2),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN:              getEnv("SENTRY_DSN", ""),
		SentryEnvironment:      getEnv("SENTRY_ENVIRONMENT", "production"),
		SentrySampleRate:       getFloatEnv("SENTRY_SAMPLE_RATE", 1.0),
		SentryTracesSampleRate: getFloatEnv("SENTRY_TRACES_SAMPLE_RATE", 0.1),

		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.Year < 2000 || c.Year > 2200 {
		errs = append(errs, fmt.Errorf("AGENDA_YEAR %d out of range", c.Year))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLMTimeout))
	}
	if c.BackupInterval < 0 {
		errs = append(errs, fmt.Errorf("BACKUP_INTERVAL cannot be negative, got %v", c.BackupInterval))
	}
	if c.BackupRetention < 1 {
		errs = append(errs, fmt.Errorf("BACKUP_RETENTION must be at least 1, got %d", c.BackupRetention))
	}
	if c.RateLimitBurst < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST cannot be negative, got %v", c.RateLimitBurst))
	}
	if c.RateLimitBurst > 0 && c.RateLimitRefillRate <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REFILL_RATE must be positive, got %v", c.RateLimitRefillRate))
	}
	if !validProvider(c.LLMPrimaryProvider) {
		errs = append(errs, fmt.Errorf("LLM_PRIMARY_PROVIDER %q must be gemini or groq", c.LLMPrimaryProvider))
	}
	if !validProvider(c.LLMFallbackProvider) {
		errs = append(errs, fmt.Errorf("LLM_FALLBACK_PROVIDER %q must be gemini or groq", c.LLMFallbackProvider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validProvider(p string) bool {
	return p == "gemini" || p == "groq"
}

// SQLitePath returns the full path to the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "agenda.db")
}

// BackupDir returns the directory holding compressed snapshots.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getDefaultDataDir returns the platform-specific default data directory.
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}
