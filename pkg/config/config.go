package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Load is the only place that reads environment variables.
type Config struct {
	// Server
	Port   int
	Env    string // development, staging, production
	Server ServerConfig

	// Data vendor
	UnusualWhales UWConfig

	// Output
	ExportDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// ServerConfig holds HTTP server tuning
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// UWConfig holds Unusual Whales API configuration
type UWConfig struct {
	APIKey          string
	BaseURL         string
	RequestInterval time.Duration // fixed pause between requests
	Timeout         time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnvAsInt("PORT", 8090),
		Env:  getEnv("ENV", "development"),

		Server: ServerConfig{
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},

		UnusualWhales: UWConfig{
			APIKey:          getEnv("UW_API_KEY", ""),
			BaseURL:         getEnv("UW_BASE_URL", "https://api.unusualwhales.com"),
			RequestInterval: getEnvAsDuration("UW_REQUEST_INTERVAL", "100ms"),
			Timeout:         getEnvAsDuration("UW_TIMEOUT", "30s"),
		},

		ExportDir: getEnv("EXPORT_DIR", "."),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// The vendor credential is the only hard requirement; every command
	// that reaches the API needs it before the first fetch.
	if c.UnusualWhales.APIKey == "" {
		return fmt.Errorf("UW_API_KEY is required (get one at https://unusualwhales.com/)")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1-65535, got %d", c.Port)
	}

	if c.UnusualWhales.RequestInterval < 0 {
		return fmt.Errorf("UW_REQUEST_INTERVAL must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
