// Package common provides shared utilities for Folium
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folium
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Valuation   ValuationConfig `toml:"valuation"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	Portfolio AreaConfig `toml:"portfolio"` // purchase lots (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	CoinGecko    CoinGeckoConfig    `toml:"coingecko"`
	ExchangeRate ExchangeRateConfig `toml:"exchangerate"`
}

// CoinGeckoConfig holds market-data provider configuration
type CoinGeckoConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *CoinGeckoConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ExchangeRateConfig holds exchange-rate provider configuration
type ExchangeRateConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ExchangeRateConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValuationConfig holds valuation engine configuration.
type ValuationConfig struct {
	BaseCurrency    string  `toml:"base_currency"`    // currency holdings are recorded in
	DisplayCurrency string  `toml:"display_currency"` // currency valuations are rendered in
	FallbackRate    float64 `toml:"fallback_rate"`    // used when the rate provider is down
	FetchWorkers    int     `toml:"fetch_workers"`    // concurrent price-history fetches
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"` // "json" or "console"
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Portfolio: AreaConfig{Path: "data/portfolio"},
		},
		Clients: ClientsConfig{
			CoinGecko: CoinGeckoConfig{
				BaseURL:   "https://api.coingecko.com/api/v3",
				RateLimit: 10,
				Timeout:   "30s",
			},
			ExchangeRate: ExchangeRateConfig{
				BaseURL:   "https://api.frankfurter.dev/v1",
				RateLimit: 5,
				Timeout:   "15s",
			},
		},
		Valuation: ValuationConfig{
			BaseCurrency:    "USD",
			DisplayCurrency: "USD",
			FallbackRate:    1.0,
			FetchWorkers:    5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateValuation(&config.Valuation); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIUM_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIUM_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIUM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FOLIUM_DATA_PATH"); path != "" {
		config.Storage.Portfolio.Path = path
	}

	if key := os.Getenv("FOLIUM_COINGECKO_API_KEY"); key != "" {
		config.Clients.CoinGecko.APIKey = key
	}

	if dc := os.Getenv("FOLIUM_DISPLAY_CURRENCY"); dc != "" {
		config.Valuation.DisplayCurrency = strings.ToUpper(dc)
	}

	if fr := os.Getenv("FOLIUM_FALLBACK_RATE"); fr != "" {
		if v, err := strconv.ParseFloat(fr, 64); err == nil && v > 0 {
			config.Valuation.FallbackRate = v
		}
	}
}

// validateValuation normalizes currencies and rejects unusable engine settings.
func validateValuation(v *ValuationConfig) error {
	v.BaseCurrency = strings.ToUpper(strings.TrimSpace(v.BaseCurrency))
	v.DisplayCurrency = strings.ToUpper(strings.TrimSpace(v.DisplayCurrency))
	if v.BaseCurrency == "" {
		v.BaseCurrency = "USD"
	}
	if v.DisplayCurrency == "" {
		v.DisplayCurrency = v.BaseCurrency
	}
	if v.FallbackRate <= 0 {
		return fmt.Errorf("valuation: fallback_rate must be positive, got %g", v.FallbackRate)
	}
	if v.FetchWorkers <= 0 {
		v.FetchWorkers = 5
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
