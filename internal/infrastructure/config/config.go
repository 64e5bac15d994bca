// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	currency := cfg.Currency.DefaultCurrency
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Currency      CurrencyConfig      `yaml:"currency"`
	Preferences   PreferencesConfig   `yaml:"preferences"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CurrencyConfig holds currency conversion settings. When RatesURL is
// empty the static rate table is used.
type CurrencyConfig struct {
	DefaultCurrency string             `yaml:"default_currency"`
	RatesURL        string             `yaml:"rates_url"`
	RatesTTLMinutes int                `yaml:"rates_ttl_minutes"`
	StaticRates     map[string]float64 `yaml:"static_rates"`
}

// PreferencesConfig holds user-level reporting preferences
type PreferencesConfig struct {
	IncludeInvestmentsInReports bool `yaml:"include_investments_in_reports"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${SPENDLENS_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("SPENDLENS_PORT", 8080),
			AllowedOrigins: splitEnv("SPENDLENS_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("SPENDLENS_DB_PATH", "spendlens.db"),
		},
		Currency: CurrencyConfig{
			DefaultCurrency: getEnv("SPENDLENS_DEFAULT_CURRENCY", "USD"),
			RatesURL:        os.Getenv("SPENDLENS_RATES_URL"),
			RatesTTLMinutes: getEnvInt("SPENDLENS_RATES_TTL_MINUTES", 60),
		},
		Preferences: PreferencesConfig{
			IncludeInvestmentsInReports: os.Getenv("SPENDLENS_INCLUDE_INVESTMENTS") == "true",
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "spendlens.db"
	}
	if c.Currency.DefaultCurrency == "" {
		c.Currency.DefaultCurrency = "USD"
	}
	if c.Currency.RatesTTLMinutes == 0 {
		c.Currency.RatesTTLMinutes = 60
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// splitEnv parses a comma-separated environment variable into a slice
func splitEnv(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
