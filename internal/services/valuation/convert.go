package valuation

import (
	"context"
	"math"

	"github.com/bencarver/folium/internal/models"
)

// round2 rounds to exactly 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fetchRate obtains the base→display conversion rate, substituting the
// configured fallback on any provider failure. The returned stale flag tells
// the caller the figures are approximate rather than live.
func (s *Service) fetchRate(ctx context.Context) (rate float64, stale bool) {
	rate, err := s.fx.GetRate(ctx, s.baseCurrency, s.displayCurrency)
	if err != nil || rate <= 0 {
		s.logger.Warn().
			Str("pair", s.baseCurrency+"/"+s.displayCurrency).
			Float64("fallback", s.fallbackRate).
			Err(err).
			Msg("Exchange rate fetch failed, using fallback")
		return s.fallbackRate, true
	}
	return rate, false
}

// convertPoints scales every monetary figure of the series by the exchange
// rate and rounds to 2 decimal places. Rounding happens here, after the merge,
// so intermediate sums never accumulate rounding error. Pure transform: the
// input slice is not mutated.
func convertPoints(points []models.ValuePoint, rate float64) []models.ValuePoint {
	converted := make([]models.ValuePoint, len(points))
	for i, p := range points {
		converted[i] = models.ValuePoint{
			Timestamp: p.Timestamp,
			Value:     round2(p.Value * rate),
			Invested:  round2(p.Invested * rate),
			Profit:    round2(p.Profit * rate),
		}
	}
	return converted
}
