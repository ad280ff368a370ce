package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var (
	ErrEmptyEncryptionKey = errors.New("EMERALD_ENCRYPTION_KEY must not be empty")
	ErrEmptyStoragePrefix = errors.New("EMERALD_STORAGE_PREFIX must not be empty")
	ErrUnknownBackend     = errors.New("unknown storage backend")
)

// Config holds application configuration.
type Config struct {
	AppEnv   string
	LogLevel string
	Port     string
	TZ       string

	// Storage
	StorageBackend string
	DBPath         string
	RedisURL       string
	StoragePrefix  string
	EncryptionKey  string
	EncryptLogs    bool

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),
		TZ:       getEnv("TZ", "UTC"),

		StorageBackend: strings.ToLower(getEnv("EMERALD_STORAGE_BACKEND", BackendSQLite)),
		DBPath:         getEnv("DB_PATH", filepath.Join("data", "emerald.db")),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StoragePrefix:  getEnv("EMERALD_STORAGE_PREFIX", "emerald_app_"),
		EncryptionKey:  getEnv("EMERALD_ENCRYPTION_KEY", "emerald-secret-key-2025"),
		EncryptLogs:    getBoolEnv("EMERALD_ENCRYPT_LOGS", true),

		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.EncryptionKey) == "" {
		return ErrEmptyEncryptionKey
	}
	if strings.TrimSpace(c.StoragePrefix) == "" {
		return ErrEmptyStoragePrefix
	}
	switch c.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.StorageBackend)
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves TZ, falling back to UTC when the zone is unknown.
func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.TZ)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", c.TZ, err)
	}
	return location, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
