package domain

import "time"

// Market is one tradeable prediction-market question, fetched fresh every
// cycle and never persisted.
type Market struct {
	ID            string
	Question      string
	Slug          string
	Outcomes      []string
	OutcomePrices []float64 // parallel to Outcomes, each in [0,1], sum ≈ 1
	Volume        float64
	Liquidity     float64
	EndDate       time.Time // zero if the venue didn't report one
	Active        bool
}

// PriceFor returns the market price of the given outcome label,
// or 0.5 if the label is unknown.
func (m Market) PriceFor(outcome string) float64 {
	for i, o := range m.Outcomes {
		if o == outcome && i < len(m.OutcomePrices) {
			return m.OutcomePrices[i]
		}
	}
	return 0.5
}

// TruncateQuestion shortens a market question for log lines. Falls back to
// the market ID when the question is empty.
func TruncateQuestion(question, id string, maxLen int) string {
	q := question
	if q == "" {
		if len(id) > 20 {
			q = id[:20] + "..."
		} else {
			q = id
		}
	}
	if len(q) > maxLen {
		q = q[:maxLen] + "..."
	}
	return q
}
