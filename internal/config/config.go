package config

import (
	"os"
	"strconv"

	"healthlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Retrieval RetrievalConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds wearable dataset source settings
type DataConfig struct {
	// Dir is the directory containing the activity/heart_rate/sleep exports.
	// Injected into the loader; nothing reads this as a process global.
	Dir string
}

// DatabaseConfig holds the optional warehouse-backed dataset source
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// RetrievalConfig holds retrieval defaults for the grounding engine
type RetrievalConfig struct {
	TopK          int
	ContextBudget int
	Collections   []string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			Dir: getEnvOrDefault("HEALTH_DATA_DIR", "./data"),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			Enabled: os.Getenv("DATABASE_URL") != "",
		},
		Retrieval: RetrievalConfig{
			TopK:          getEnvIntOrDefault("RETRIEVAL_TOP_K", 5),
			ContextBudget: getEnvIntOrDefault("RETRIEVAL_CONTEXT_BUDGET", 4000),
			Collections:   []string{"nutrition_docs", "pubmed_abstracts"},
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Data.Dir == "" {
		return errors.ConfigInvalid("HEALTH_DATA_DIR must not be empty")
	}
	if cfg.Retrieval.TopK < 1 {
		return errors.ConfigInvalid("RETRIEVAL_TOP_K must be at least 1")
	}
	if cfg.Retrieval.ContextBudget < 1 {
		return errors.ConfigInvalid("RETRIEVAL_CONTEXT_BUDGET must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
