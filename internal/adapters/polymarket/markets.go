package polymarket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amsanchez/edgebot/internal/domain"
)

const gammaMarketsPath = "/markets"

// FetchMarkets returns up to limit active, open markets starting at offset.
// Parsing is per-record best-effort: a malformed record gets defaults or is
// skipped, the batch succeeds as long as Gamma responds.
func (c *Client) FetchMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error) {
	url := fmt.Sprintf("%s%s?limit=%d&offset=%d&active=true&closed=false",
		c.gammaBase, gammaMarketsPath, limit, offset)

	var raw []gammaMarket
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("polymarket.FetchMarkets: %w", err)
	}

	markets := make([]domain.Market, 0, len(raw))
	skipped := 0
	for _, gm := range raw {
		m, ok := mapMarket(gm)
		if !ok {
			skipped++
			continue
		}
		markets = append(markets, m)
	}

	if skipped > 0 {
		slog.Debug("skipped unmappable market records", "skipped", skipped, "kept", len(markets))
	}
	return markets, nil
}
