package engine

import (
	"fmt"
	"math"

	"github.com/amsanchez/edgebot/internal/domain"
)

const (
	// Reported when API spend is zero: runway is effectively unbounded.
	runwaySentinelDays = 9999

	tradingDaysPerYear = 252
)

// updateStats recomputes every derived field of the stats record from the
// ledger and the engine counters. The monotonic counters (wins, losses,
// trades, markets scanned, cycle, API costs) are left alone — they only
// move during the cycle itself. Must be called with the lock held.
func (e *Engine) updateStats() {
	s := &e.stats

	s.TotalPnL = s.CurrentBalance - s.InitialBalance
	s.TotalPnLPct = FormatPnL(s.TotalPnL)

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100.0

		var totalBet float64
		for _, o := range e.orders {
			if o.Status == domain.StatusResolved {
				totalBet += o.Size
			}
		}
		s.AvgBet = totalBet / float64(s.TotalTrades)
	}

	if s.TotalTrades > 1 {
		var returns []float64
		for _, o := range e.orders {
			if o.PnL != nil {
				returns = append(returns, *o.PnL)
			}
		}
		s.SharpeRatio = sharpeRatio(returns)
	}

	if e.edgeCount > 0 {
		s.AvgEdge = e.edgeSum / float64(e.edgeCount)
	}

	if s.DailyAPICost > 0 {
		days := s.CurrentBalance / s.DailyAPICost
		if days < 0 {
			days = 0
		}
		s.RunwayDays = uint32(days)
	} else {
		s.RunwayDays = runwaySentinelDays
	}

	// Known simplification: daily cost mirrors cumulative spend, it is not
	// normalized per day.
	s.DailyAPICost = s.APICosts
}

// sharpeRatio is a rough annualized Sharpe over realized per-order PnL:
// population variance, mean/std × √252. Operator feedback only, not a
// rigorous risk metric.
func sharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(tradingDaysPerYear)
}

// FormatPnL renders cumulative PnL the way the operator interface shows it:
// explicit sign, dollars in thousands, one decimal.
func FormatPnL(pnl float64) string {
	sign := ""
	if pnl >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s$%.1fk", sign, pnl/1000.0)
}
