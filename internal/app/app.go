// Package app wires configuration, storage, clients and services together.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bencarver/folium/internal/clients/coingecko"
	"github.com/bencarver/folium/internal/clients/exchangerate"
	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/interfaces"
	"github.com/bencarver/folium/internal/services/portfolio"
	"github.com/bencarver/folium/internal/services/valuation"
	"github.com/bencarver/folium/internal/storage"
)

// App holds all initialized services, clients and storage. It is the shared
// core used by cmd/folium-server and by tests.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	MarketClient     interfaces.MarketDataClient
	FXClient         interfaces.ExchangeRateClient
	ValuationService interfaces.ValuationService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes all services, clients and storage.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Check provided path, FOLIUM_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FOLIUM_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folium.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folium.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketClient := coingecko.NewClient(
		coingecko.WithBaseURL(config.Clients.CoinGecko.BaseURL),
		coingecko.WithAPIKey(config.Clients.CoinGecko.APIKey),
		coingecko.WithLogger(logger),
		coingecko.WithRateLimit(config.Clients.CoinGecko.RateLimit),
		coingecko.WithTimeout(config.Clients.CoinGecko.GetTimeout()),
	)

	fxClient := exchangerate.NewClient(
		exchangerate.WithBaseURL(config.Clients.ExchangeRate.BaseURL),
		exchangerate.WithLogger(logger),
		exchangerate.WithRateLimit(config.Clients.ExchangeRate.RateLimit),
		exchangerate.WithTimeout(config.Clients.ExchangeRate.GetTimeout()),
	)

	valuationService := valuation.NewService(storageManager, marketClient, fxClient, config.Valuation, logger)
	portfolioService := portfolio.NewService(storageManager, marketClient, config.Valuation.BaseCurrency, logger)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Str("display_currency", config.Valuation.DisplayCurrency).
		Msg("Folium initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		MarketClient:     marketClient,
		FXClient:         fxClient,
		ValuationService: valuationService,
		PortfolioService: portfolioService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases all resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Storage close failed")
		}
	}
}
