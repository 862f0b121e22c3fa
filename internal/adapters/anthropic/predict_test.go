package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amsanchez/edgebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMarket() domain.Market {
	return domain.Market{
		ID:            "0xmkt",
		Question:      "Will it rain in Madrid tomorrow?",
		Outcomes:      []string{"Yes", "No"},
		OutcomePrices: []float64{0.4, 0.6},
	}
}

func TestParsePrediction_NoJSON_FallsBackToNeutral(t *testing.T) {
	p := parsePrediction("no json here", testMarket())

	assert.Equal(t, 0.0, p.Edge)
	assert.Equal(t, 0.3, p.Confidence)
	assert.Equal(t, 0.5, p.FairPrice)
	assert.Equal(t, "Yes", p.PredictedOutcome)
	assert.Equal(t, 0.0, p.RecommendedSize)
	assert.Equal(t, "0xmkt", p.MarketID)
}

func TestParsePrediction_ExtractsEmbeddedJSON(t *testing.T) {
	text := `Here is my assessment:
{"predicted_outcome": "No", "fair_price": 0.25, "confidence": 0.8, "edge": 0.35, "reasoning": "market overprices rain", "recommended_size_pct": 0.1}
Let me know if you need more detail.`

	p := parsePrediction(text, testMarket())

	assert.Equal(t, "No", p.PredictedOutcome)
	assert.InDelta(t, 0.25, p.FairPrice, 1e-9)
	assert.InDelta(t, 0.8, p.Confidence, 1e-9)
	assert.InDelta(t, 0.35, p.Edge, 1e-9)
	assert.InDelta(t, 0.1, p.RecommendedSize, 1e-9)
	assert.Equal(t, "market overprices rain", p.Reasoning)
}

func TestParsePrediction_PartialJSON_DefaultsMissingFields(t *testing.T) {
	p := parsePrediction(`{"edge": 0.4}`, testMarket())

	assert.InDelta(t, 0.4, p.Edge, 1e-9)
	assert.Equal(t, 0.3, p.Confidence)
	assert.Equal(t, 0.5, p.FairPrice)
	assert.Equal(t, "Yes", p.PredictedOutcome)
}

func TestPredict_TracksTokenCost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": `{"predicted_outcome":"Yes","edge":0.1,"fair_price":0.5,"confidence":0.6,"recommended_size_pct":0.05,"reasoning":"ok"}`},
			},
			"usage": map[string]any{"input_tokens": 1_000_000, "output_tokens": 200_000},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	p, err := c.Predict(context.Background(), testMarket())
	require.NoError(t, err)
	assert.InDelta(t, 0.1, p.Edge, 1e-9)

	// $3/M input + $15/M output: 1M in + 0.2M out = 3 + 3 = $6.
	assert.InDelta(t, 6.0, c.CumulativeCost(), 1e-9)
}

func TestPredict_TransportFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	_, err := c.Predict(context.Background(), testMarket())
	assert.Error(t, err)
}

func TestPredict_GarbageTextIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "no json here"}},
			"usage":   map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	p, err := c.Predict(context.Background(), testMarket())
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Edge)
	assert.Equal(t, 0.3, p.Confidence)
	assert.Equal(t, 0.5, p.FairPrice)
}
