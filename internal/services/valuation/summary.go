package valuation

import "github.com/bencarver/folium/internal/models"

// summary holds live snapshot totals in the base currency.
type summary struct {
	CurrentValue  float64
	TotalInvested float64
	TotalProfit   float64
}

// summarize computes the live snapshot totals from the aggregated positions.
func summarize(positions []models.Position) summary {
	var s summary
	for _, pos := range positions {
		s.CurrentValue += pos.MarketValue()
		s.TotalInvested += pos.TotalInvested
	}
	s.TotalProfit = s.CurrentValue - s.TotalInvested
	return s
}

// percentageChange returns the percent move from the first to the last point
// of the converted series. Defined as exactly 0 when the first value is 0, so
// the response never carries NaN or Inf.
func percentageChange(points []models.ValuePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	first := points[0].Value
	last := points[len(points)-1].Value
	if first == 0 {
		return 0
	}
	return round2((last - first) / first * 100)
}
