package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	defaultQuotaBytes = 5 << 20
)

type Config struct {
	// HTTP Server
	Host string
	Port string

	// Storage
	DataBackend       string
	SQLiteDBPath      string
	StorageQuotaBytes int
	MemorySeedDir     string

	// UI
	NotificationDuration time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "8081"),

		DataBackend:       getEnv("DATA_BACKEND", BackendSQLite),
		SQLiteDBPath:      getEnv("SQLITE_DB_PATH", "./data/splitter.db"),
		StorageQuotaBytes: getEnvInt("STORAGE_QUOTA_BYTES", defaultQuotaBytes),
		MemorySeedDir:     getEnv("MEMORY_SEED_DIR", ""),

		NotificationDuration: getEnvDuration("NOTIFICATION_DURATION", 3*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Addr is the listen address built from Host and Port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Host == "" {
		errors = append(errors, "host cannot be empty")
	}

	validBackends := []string{BackendMemory, BackendSQLite}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.DataBackend == BackendMemory && c.MemorySeedDir != "" {
		if info, err := os.Stat(c.MemorySeedDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("memory seed directory does not exist: %s", c.MemorySeedDir))
		}
	}

	if c.StorageQuotaBytes < 0 {
		errors = append(errors, fmt.Sprintf("invalid storage quota %d: must be zero (unlimited) or positive", c.StorageQuotaBytes))
	}

	if c.NotificationDuration < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid notification duration %v: must be at least 100ms", c.NotificationDuration))
	} else if c.NotificationDuration > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid notification duration %v: must be at most 1 minute", c.NotificationDuration))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "pretty":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of text, json, pretty", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
