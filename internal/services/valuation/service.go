package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/interfaces"
	"github.com/bencarver/folium/internal/models"
)

// Service implements ValuationService. All collaborators are injected at
// construction; the service holds no mutable state across requests.
type Service struct {
	storage         interfaces.StorageManager
	market          interfaces.MarketDataClient
	fx              interfaces.ExchangeRateClient
	logger          *common.Logger
	baseCurrency    string
	displayCurrency string
	fallbackRate    float64
	fetchWorkers    int

	// now is the clock for synthesized points; swapped in tests.
	now func() time.Time
}

// NewService creates a new valuation service.
func NewService(
	storage interfaces.StorageManager,
	market interfaces.MarketDataClient,
	fx interfaces.ExchangeRateClient,
	cfg common.ValuationConfig,
	logger *common.Logger,
) *Service {
	workers := cfg.FetchWorkers
	if workers <= 0 {
		workers = 5
	}
	return &Service{
		storage:         storage,
		market:          market,
		fx:              fx,
		logger:          logger,
		baseCurrency:    cfg.BaseCurrency,
		displayCurrency: cfg.DisplayCurrency,
		fallbackRate:    cfg.FallbackRate,
		fetchWorkers:    workers,
		now:             time.Now,
	}
}

// GetValuation loads a portfolio's holdings and valuates them over the window.
func (s *Service) GetValuation(ctx context.Context, portfolioID string, window models.Window) (*models.Valuation, error) {
	if portfolioID == "" {
		return nil, fmt.Errorf("portfolio id is required")
	}

	holdings, err := s.storage.PortfolioStore().ListHoldings(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings for portfolio %s: %w", portfolioID, err)
	}

	return s.Valuate(ctx, portfolioID, holdings, window)
}

// Valuate runs the valuation pipeline over a pre-fetched holdings list:
// aggregate lots, fetch histories concurrently (the exchange rate fetch runs
// alongside them), merge, convert, summarize.
func (s *Service) Valuate(ctx context.Context, portfolioID string, holdings []models.Holding, window models.Window) (*models.Valuation, error) {
	v, _, err := s.valuate(ctx, portfolioID, holdings, window)
	return v, err
}

// valuate additionally returns the converted series points for chart rendering.
func (s *Service) valuate(ctx context.Context, portfolioID string, holdings []models.Holding, window models.Window) (*models.Valuation, []models.ValuePoint, error) {
	start := s.now()

	positions, err := AggregatePositions(holdings)
	if err != nil {
		return nil, nil, err
	}

	// Empty portfolio short-circuits before any provider call and before the
	// merge step, so it never takes the synthesized-point path.
	if len(positions) == 0 {
		return &models.Valuation{
			PortfolioID: portfolioID,
			Window:      window,
			Currency:    s.displayCurrency,
			Labels:      []string{},
			Values:      []float64{},
			Invested:    []float64{},
			Profits:     []float64{},
			GeneratedAt: start,
		}, nil, nil
	}

	// The rate fetch is independent of the history fan-out; run it alongside.
	type rateResult struct {
		rate  float64
		stale bool
	}
	rateChan := make(chan rateResult, 1)
	go func() {
		rate, stale := s.fetchRate(ctx)
		rateChan <- rateResult{rate: rate, stale: stale}
	}()

	series := s.fetchHistories(ctx, positions, window)
	points := mergeSeries(series, s.now())
	rr := <-rateChan

	converted := convertPoints(points, rr.rate)
	live := summarize(positions)

	v := &models.Valuation{
		PortfolioID:      portfolioID,
		Window:           window,
		Currency:         s.displayCurrency,
		Labels:           make([]string, len(converted)),
		Values:           make([]float64, len(converted)),
		Invested:         make([]float64, len(converted)),
		Profits:          make([]float64, len(converted)),
		PercentageChange: percentageChange(converted),
		CurrentValue:     round2(live.CurrentValue * rr.rate),
		TotalInvested:    round2(live.TotalInvested * rr.rate),
		TotalProfit:      round2(live.TotalProfit * rr.rate),
		StaleRate:        rr.stale,
		GeneratedAt:      start,
	}

	layout := window.LabelFormat()
	for i, p := range converted {
		v.Labels[i] = p.Time().UTC().Format(layout)
		v.Values[i] = p.Value
		v.Invested[i] = p.Invested
		v.Profits[i] = p.Profit
	}

	s.logger.Info().
		Str("portfolio", portfolioID).
		Str("window", string(window)).
		Int("positions", len(positions)).
		Int("points", len(converted)).
		Bool("stale_rate", rr.stale).
		Dur("elapsed", s.now().Sub(start)).
		Msg("Valuation complete")

	return v, converted, nil
}

// Ensure Service implements ValuationService
var _ interfaces.ValuationService = (*Service)(nil)
