package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/amsanchez/edgebot/internal/domain"
)

// Logged when a single predictor call fails; the market is skipped, the
// cycle continues.
const inferenceFailCost = 0.002

// RunCycle executes one scan→predict→order→resolve→aggregate iteration and
// returns the activity entries appended during this call, in emission order,
// so a caller can stream incremental updates without re-reading the log.
//
// Calling while idle returns an empty delta and mutates nothing — that is
// not an error. A market fetch failure aborts the cycle early but leaves the
// engine running; a predictor failure skips only that market.
func (e *Engine) RunCycle(ctx context.Context) []domain.ActivityEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	delta := []domain.ActivityEntry{}
	if !e.running {
		return delta
	}

	e.stats.Cycle++
	e.stats.Uptime = e.uptimeLocked()

	if e.markets == nil {
		// Not configured yet: the cycle ticks but there is nothing to scan.
		return delta
	}

	delta = append(delta, e.addActivity(
		fmt.Sprintf("Scanning markets... Cycle #%d", e.stats.Cycle), domain.ActivityInfo))

	markets, err := e.markets.FetchMarkets(ctx, marketPageSize, 0)
	if err != nil {
		slog.Error("market fetch failed", "cycle", e.stats.Cycle, "err", err)
		delta = append(delta, e.addActivity(
			fmt.Sprintf("Error fetching markets: %v", err), domain.ActivityError))
		return delta
	}

	e.stats.MarketsScanned += uint64(len(markets))
	delta = append(delta, e.addActivity(
		fmt.Sprintf("Processing %d markets...", len(markets)), domain.ActivityInfo))

	limit := min(maxMarketsPerCycle, len(markets))
	for _, market := range markets[:limit] {
		if e.predictor == nil {
			break
		}
		delta = append(delta, e.analyzeMarket(ctx, market)...)
	}

	delta = append(delta, e.resolveFilledOrders()...)

	e.balances.Append(domain.BalancePoint{
		Timestamp: e.now(),
		Balance:   e.stats.CurrentBalance,
		Label:     fmt.Sprintf("%dh", e.balances.Len()),
	})

	e.updateStats()
	return delta
}

// analyzeMarket requests one prediction and opens a simulated position when
// the edge and size thresholds clear. Must be called with the lock held.
func (e *Engine) analyzeMarket(ctx context.Context, market domain.Market) []domain.ActivityEntry {
	var delta []domain.ActivityEntry

	prediction, err := e.predictor.Predict(ctx, market)
	if err != nil {
		slog.Warn("predictor call failed",
			"market", domain.TruncateQuestion(market.Question, market.ID, 40), "err", err)
		delta = append(delta, e.addActivity(
			fmt.Sprintf("Inference: -$%.3f", inferenceFailCost), domain.ActivityInference))
		return delta
	}

	e.stats.APICosts = e.predictor.CumulativeCost()
	e.edgeSum += prediction.Edge
	e.edgeCount++

	if prediction.Edge < e.cfg.MinEdgeThreshold {
		return delta
	}

	candidate := prediction.RecommendedSize * e.stats.CurrentBalance
	delta = append(delta, e.addActivity(
		fmt.Sprintf("Edge: %q > $%.0f @ %.2f (fair %.2f)",
			domain.TruncateQuestion(market.Question, market.ID, 40),
			candidate, prediction.Edge, prediction.FairPrice),
		domain.ActivityEdge))

	orderSize := math.Min(candidate, e.cfg.MaxBetSize)

	// auto_trading is the simulation-safety gate: without it the edge is
	// surfaced to the operator but no position is opened.
	if orderSize > minOrderSize && e.cfg.AutoTrading {
		e.orders = append(e.orders, e.newOrder(market, prediction, orderSize))
		delta = append(delta, e.addActivity(
			fmt.Sprintf("ORDER $%.2f → %q", orderSize,
				domain.TruncateQuestion(market.Question, market.ID, 40)),
			domain.ActivityOrder))
	}

	return delta
}
