package valuation

import (
	"sort"
	"time"

	"github.com/bencarver/folium/internal/models"
)

// mergeSeries aligns per-position price histories into one chronological
// portfolio value series.
//
// The merged timestamp set is the union of every position's sample
// timestamps. At each timestamp only positions with an exact sample there
// contribute value; there is no cross-asset interpolation, so misaligned
// provider grids produce partial points rather than estimated ones. Invested
// capital is a constant snapshot across the series.
//
// Points whose value is zero are degenerate (no position had a real sample)
// and are dropped. If that leaves nothing, a single point carrying the live
// totals is synthesized so callers always get at least one point. Callers
// must short-circuit empty portfolios before reaching this function.
func mergeSeries(series []positionSeries, now time.Time) []models.ValuePoint {
	totalInvested := 0.0
	for _, ps := range series {
		totalInvested += ps.Position.TotalInvested
	}

	valueAt := make(map[int64]float64)
	for _, ps := range series {
		for _, sample := range ps.Samples {
			valueAt[sample.Timestamp] += sample.Price * ps.Position.TotalAmount
		}
	}

	points := make([]models.ValuePoint, 0, len(valueAt))
	for ts, value := range valueAt {
		if value == 0 {
			continue
		}
		points = append(points, models.ValuePoint{
			Timestamp: ts,
			Value:     value,
			Invested:  totalInvested,
			Profit:    value - totalInvested,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})

	if len(points) == 0 {
		// Every fetch failed or every sample was filtered. Fall back to a single
		// live-snapshot point.
		currentValue := 0.0
		for _, ps := range series {
			currentValue += ps.Position.MarketValue()
		}
		points = append(points, models.ValuePoint{
			Timestamp: now.UnixMilli(),
			Value:     currentValue,
			Invested:  totalInvested,
			Profit:    currentValue - totalInvested,
		})
	}

	return points
}
