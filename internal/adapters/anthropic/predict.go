package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amsanchez/edgebot/internal/domain"
)

const systemPrompt = `You are an expert prediction market analyst and quantitative trader.
Your task is to analyze prediction markets and determine:
1. The TRUE probability of each outcome based on available information
2. Whether there is an EDGE (difference between fair price and market price)
3. Your confidence level in the prediction
4. Recommended position size based on Kelly Criterion

Respond in strict JSON format:
{
    "predicted_outcome": "Yes" or "No",
    "fair_price": 0.XX,
    "confidence": 0.XX,
    "edge": 0.XX,
    "reasoning": "Brief explanation",
    "recommended_size_pct": 0.XX
}

Only recommend trades where edge > 0.05 (5%). Be conservative with sizing.
Consider base rates, current events, and market efficiency.`

// Neutral fallback used whenever the model reply can't be parsed. Malformed
// output is a tier-b failure: resolved to defaults, never an error.
const (
	fallbackOutcome    = "Yes"
	fallbackFairPrice  = 0.5
	fallbackConfidence = 0.3
)

// Predict asks the model to assess one market. Only transport failures
// return an error; a reply the parser can't make sense of yields the neutral
// fallback prediction.
func (c *Client) Predict(ctx context.Context, market domain.Market) (domain.AIPrediction, error) {
	text, err := c.complete(ctx, systemPrompt, marketPrompt(market))
	if err != nil {
		return domain.AIPrediction{}, fmt.Errorf("anthropic.Predict: %w", err)
	}
	return parsePrediction(text, market), nil
}

func marketPrompt(m domain.Market) string {
	endDate := "Not set"
	if !m.EndDate.IsZero() {
		endDate = m.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf(
		"Analyze this prediction market and provide your assessment:\n\n"+
			"Market: %s\nOutcomes: %v\nCurrent Prices: %v\nVolume: $%.0f\nLiquidity: $%.0f\nEnd Date: %s",
		m.Question, m.Outcomes, m.OutcomePrices, m.Volume, m.Liquidity, endDate,
	)
}

// rawVerdict mirrors the JSON shape the system prompt asks for. Pointers
// distinguish missing fields from zero values so each one can default
// independently.
type rawVerdict struct {
	PredictedOutcome   *string  `json:"predicted_outcome"`
	FairPrice          *float64 `json:"fair_price"`
	Confidence         *float64 `json:"confidence"`
	Edge               *float64 `json:"edge"`
	Reasoning          *string  `json:"reasoning"`
	RecommendedSizePct *float64 `json:"recommended_size_pct"`
}

// parsePrediction extracts an embedded JSON object from free-form model text
// (first '{' through last '}') and fills any missing field with its neutral
// default.
func parsePrediction(text string, market domain.Market) domain.AIPrediction {
	jsonStr := text
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			jsonStr = text[start : end+1]
		}
	}

	var v rawVerdict
	if err := json.Unmarshal([]byte(jsonStr), &v); err != nil {
		v = rawVerdict{}
	}

	p := domain.AIPrediction{
		MarketID:         market.ID,
		MarketName:       market.Question,
		PredictedOutcome: fallbackOutcome,
		Confidence:       fallbackConfidence,
		FairPrice:        fallbackFairPrice,
		Reasoning:        "No reasoning provided",
	}
	if v.PredictedOutcome != nil {
		p.PredictedOutcome = *v.PredictedOutcome
	}
	if v.Confidence != nil {
		p.Confidence = *v.Confidence
	}
	if v.Edge != nil {
		p.Edge = *v.Edge
	}
	if v.FairPrice != nil {
		p.FairPrice = *v.FairPrice
	}
	if v.Reasoning != nil {
		p.Reasoning = *v.Reasoning
	}
	if v.RecommendedSizePct != nil {
		p.RecommendedSize = *v.RecommendedSizePct
	}
	return p
}
