package ports

import (
	"context"

	"github.com/amsanchez/edgebot/internal/domain"
)

// Predictor asks an AI model to assess one market's edge.
type Predictor interface {
	// Predict returns the model's verdict for the market. Malformed model
	// output resolves to a documented neutral fallback; only transport
	// failures return an error.
	Predict(ctx context.Context, market domain.Market) (domain.AIPrediction, error)

	// CumulativeCost returns the estimated total API spend in USD since the
	// client was constructed.
	CumulativeCost() float64
}
