package valuation

import (
	"context"

	"github.com/bencarver/folium/internal/models"
)

// positionSeries pairs a position with its fetched price history.
type positionSeries struct {
	Position models.Position
	Samples  []models.PriceSample
}

// fetchHistories fans out one market-chart request per position through a
// bounded worker pool and fans the results back in, preserving position order.
// A failed fetch never aborts the request: the position gets an empty sample
// list and contributes nothing to the merged series. Samples with non-positive
// prices are provider artifacts and are dropped individually.
func (s *Service) fetchHistories(ctx context.Context, positions []models.Position, window models.Window) []positionSeries {
	series := make([]positionSeries, len(positions))
	for i, pos := range positions {
		series[i] = positionSeries{Position: pos}
	}

	workers := s.fetchWorkers
	if workers > len(positions) {
		workers = len(positions)
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		index   int
		samples []models.PriceSample
		err     error
	}

	jobs := make(chan int, len(positions))
	results := make(chan result, len(positions))

	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				samples, err := s.market.GetMarketChart(ctx, series[i].Position.AssetID, s.baseCurrency, window)
				results <- result{index: i, samples: samples, err: err}
			}
		}()
	}

	for i := range positions {
		jobs <- i
	}
	close(jobs)

	for range positions {
		r := <-results
		if r.err != nil {
			// Empty samples, best-effort valuation continues without this asset.
			s.logger.Warn().
				Str("asset", series[r.index].Position.AssetID).
				Err(r.err).
				Msg("Price history fetch failed, skipping asset")
			continue
		}
		series[r.index].Samples = dropNonPositive(r.samples)
	}
	close(results)

	return series
}

// dropNonPositive filters out zero/negative price samples.
func dropNonPositive(samples []models.PriceSample) []models.PriceSample {
	kept := make([]models.PriceSample, 0, len(samples))
	for _, sample := range samples {
		if sample.Price > 0 {
			kept = append(kept, sample)
		}
	}
	return kept
}
