package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	API       APIConfig
	Logger    LoggerConfig
	Session   SessionConfig
	Redis     RedisConfig
	Export    ExportConfig
	S3        S3Config
	Fallback  FallbackConfig
	ImageHost ImageHostConfig
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// SessionConfig selects where the admin session flag is persisted.
type SessionConfig struct {
	Backend   string // "file", "memory" or "redis"
	File      string
	KeyPrefix string
	TTL       time.Duration
}

// RedisConfig holds Redis connection settings for the redis session backend.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ExportConfig holds the local destination for CSV exports.
type ExportConfig struct {
	Dir string
}

// S3Config holds AWS S3 configuration for CSV exports.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "exports/")
}

// FallbackConfig points at an optional document overriding the static
// content shown when the backend is down. File may end in .gz.
type FallbackConfig struct {
	File     string
	S3Prefix string // Prefix for the S3 key; used only when S3 is enabled
}

// ImageHostConfig holds the third-party image host settings.
type ImageHostConfig struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	MaxSizeMB    int
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("RESTAURANT_API_URL", "http://localhost:5001/api"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Session: SessionConfig{
			Backend:   getEnv("SESSION_BACKEND", "file"),
			File:      getEnv("SESSION_FILE", defaultSessionFile()),
			KeyPrefix: getEnv("SESSION_KEY_PREFIX", "restaurant:"),
			TTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "."),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "exports/"),
		},
		Fallback: FallbackConfig{
			File:     getEnv("FALLBACK_CONTENT_FILE", ""),
			S3Prefix: getEnv("FALLBACK_S3_PREFIX", "content/"),
		},
		ImageHost: ImageHostConfig{
			BaseURL:      getEnv("IMAGE_HOST_URL", "https://api.cloudinary.com/v1_1"),
			CloudName:    getEnv("IMAGE_HOST_CLOUD_NAME", ""),
			UploadPreset: getEnv("IMAGE_HOST_UPLOAD_PRESET", "ml_default"),
			MaxSizeMB:    getEnvAsInt("IMAGE_HOST_MAX_SIZE_MB", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API base URL scheme: %s (must be http or https)", u.Scheme)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Session.Backend {
	case "memory":
	case "file":
		if c.Session.File == "" {
			return fmt.Errorf("session file is required when session backend is file")
		}
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required when session backend is redis")
		}
		if c.Redis.Port < 1 || c.Redis.Port > 65535 {
			return fmt.Errorf("invalid redis port: %d", c.Redis.Port)
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be file, memory, or redis)", c.Session.Backend)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("export directory is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.ImageHost.MaxSizeMB < 1 {
		return fmt.Errorf("image host max size must be at least 1 MB")
	}

	return nil
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".restaurant", "session.json")
	}
	return filepath.Join(home, ".restaurant", "session.json")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
