// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Publish targets for the cleaned dataset
const (
	PublishNone      = "none"
	PublishPostgres  = "postgres"
	PublishSnowflake = "snowflake"
)

// Config represents the application configuration
type Config struct {
	// Publishing of the cleaned dataset (optional)
	PublishTarget    string
	PublishBatchSize int
	PublishTimeout   time.Duration

	// Database connections, only loaded for the selected target
	Snowflake *SnowflakeConfig
	Postgres  *PostgresConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables.
// A .env file (or the file named by ENV_FILE) is applied first when present.
func LoadConfig() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		PublishTarget:    getEnv("PUBLISH_TARGET", PublishNone),
		PublishBatchSize: getEnvAsInt("PUBLISH_BATCH_SIZE", 1000),
		PublishTimeout:   time.Duration(getEnvAsInt("PUBLISH_TIMEOUT_SECONDS", 60)) * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	switch cfg.PublishTarget {
	case PublishSnowflake:
		snowConfig, err := LoadSnowflakeConfig()
		if err != nil {
			return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
		}
		cfg.Snowflake = snowConfig
	case PublishPostgres:
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	switch c.PublishTarget {
	case PublishNone:
	case PublishSnowflake:
		if c.Snowflake == nil {
			return errors.New("snowflake configuration is required")
		}
	case PublishPostgres:
		if c.Postgres == nil {
			return errors.New("postgreSQL configuration is required")
		}
	default:
		return fmt.Errorf("unknown publish target %q", c.PublishTarget)
	}

	if c.PublishBatchSize <= 0 {
		return errors.New("publish batch size must be positive")
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}

// PublishEnabled reports whether cleaned rows are mirrored to a database
func (c *Config) PublishEnabled() bool {
	return c.PublishTarget != PublishNone
}

// loadEnvFile applies a dotenv file without overriding variables already set
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
