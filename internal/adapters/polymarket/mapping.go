package polymarket

import (
	"time"

	"github.com/amsanchez/edgebot/internal/domain"
)

// mapMarket converts a raw Gamma record to a domain.Market. A record is only
// unmappable when it has no usable identity or question; every other missing
// field gets a documented default.
func mapMarket(gm gammaMarket) (domain.Market, bool) {
	id := gm.ConditionID
	if id == "" {
		id = gm.ID
	}
	if id == "" || gm.Question == "" {
		return domain.Market{}, false
	}

	outcomes := []string(gm.Outcomes)
	if len(outcomes) == 0 {
		outcomes = []string{"Yes", "No"}
	}

	prices := []float64(gm.OutcomePrices)
	if len(prices) == 0 {
		prices = defaultPrices(len(outcomes))
	}

	return domain.Market{
		ID:            id,
		Question:      gm.Question,
		Slug:          gm.Slug,
		Outcomes:      outcomes,
		OutcomePrices: prices,
		Volume:        float64(gm.Volume),
		Liquidity:     float64(gm.Liquidity),
		EndDate:       parseEndDate(gm.EndDate),
		Active:        true,
	}, true
}

func defaultPrices(n int) []float64 {
	if n <= 0 {
		n = 2
	}
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 1.0 / float64(n)
	}
	return prices
}

// parseEndDate tries the date formats Gamma is known to emit.
func parseEndDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
