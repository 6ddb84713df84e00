package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path  string // SQLite database file path
	Debug bool   // log every SQL statement
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address         string // listen address (e.g., ":5000")
	Mode            string // gin mode: release, debug or test
	ShutdownTimeout time.Duration
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  zerolog.Level
	Format string // json or console
}

// Load reads configuration from the environment with sensible defaults.
// Values from envFile (typically ".env") are applied first and never override
// variables already present in the environment. A missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	timeout, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got %d", timeout)
	}
	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", format)
	}
	mode := strings.ToLower(getEnv("GIN_MODE", "release"))
	switch mode {
	case "release", "debug", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", mode)
	}

	return &Config{
		Database: DatabaseConfig{
			Path:  getEnv("DB_PATH", "users.db"),
			Debug: level <= zerolog.DebugLevel,
		},
		HTTP: HTTPConfig{
			Address:         getEnv("HTTP_ADDRESS", ":5000"),
			Mode:            mode,
			ShutdownTimeout: time.Duration(timeout) * time.Second,
		},
		Log: LogConfig{
			Level:  level,
			Format: format,
		},
	}, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a one-line summary of the config for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s (%s), Log: %s/%s}",
		c.Database.Path, c.HTTP.Address, c.HTTP.Mode, c.Log.Level, c.Log.Format)
}
