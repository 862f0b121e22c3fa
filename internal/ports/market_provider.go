package ports

import (
	"context"

	"github.com/amsanchez/edgebot/internal/domain"
)

// MarketProvider fetches tradeable markets from the venue.
type MarketProvider interface {
	// FetchMarkets returns up to limit active markets starting at offset.
	// Individual malformed records are skipped with defaults; the batch only
	// fails if the provider itself does.
	FetchMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error)
}
