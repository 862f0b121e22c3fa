// Package notify presents cycle results on the terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amsanchez/edgebot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implements ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout. With table set the
// stats dump renders the full ledger table instead of a one-liner.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyCycle prints the activity delta from one cycle, one clocked line
// per entry. An empty delta prints nothing.
func (c *Console) NotifyCycle(delta []domain.ActivityEntry) {
	for _, entry := range delta {
		fmt.Fprintf(c.out, "%s %-9s %s\n", entry.Clock(), entry.Type, entry.Message)
	}
}

// NotifyStats prints the derived statistics, compact or as tables.
func (c *Console) NotifyStats(stats domain.BotStats, orders []domain.Order) {
	if !c.table {
		c.printCompact(stats)
		return
	}
	c.printStatsTable(stats)
	c.printLedger(orders)
}

// printCompact puts the essentials on one line.
func (c *Console) printCompact(stats domain.BotStats) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] cycle #%d bal $%.2f pnl %s",
		time.Now().Format("15:04:05"), stats.Cycle, stats.CurrentBalance, stats.TotalPnLPct)
	if stats.TotalTrades > 0 {
		fmt.Fprintf(&sb, " | %dW/%dL (%.0f%%)", stats.Wins, stats.Losses, stats.WinRate)
	}
	fmt.Fprintf(&sb, " | scanned %d | api $%.3f", stats.MarketsScanned, stats.APICosts)
	fmt.Fprintln(c.out, sb.String())
}

func (c *Console) printStatsTable(stats domain.BotStats) {
	fmt.Fprintf(c.out, "\n[%s] cycle #%d — uptime %s\n",
		time.Now().Format("15:04:05"), stats.Cycle, stats.Uptime)

	table := tablewriter.NewWriter(c.out)
	table.Header("Balance", "PnL", "Trades", "Win%", "AvgBet", "Best", "Worst", "Sharpe", "API$", "Runway")
	table.Append(
		fmt.Sprintf("$%.2f", stats.CurrentBalance),
		stats.TotalPnLPct,
		fmt.Sprintf("%d", stats.TotalTrades),
		fmt.Sprintf("%.1f", stats.WinRate),
		fmt.Sprintf("$%.2f", stats.AvgBet),
		fmt.Sprintf("$%.2f", stats.BestTrade),
		fmt.Sprintf("$%.2f", stats.WorstTrade),
		fmt.Sprintf("%.2f", stats.SharpeRatio),
		fmt.Sprintf("$%.3f", stats.APICosts),
		runwayLabel(stats.RunwayDays),
	)
	table.Render()
}

func (c *Console) printLedger(orders []domain.Order) {
	if len(orders) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Side", "Outcome", "Price", "Size", "Status", "PnL")

	for i, o := range orders {
		pnl := "-"
		if o.PnL != nil {
			pnl = fmt.Sprintf("$%+.2f", *o.PnL)
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			domain.TruncateQuestion(o.MarketName, o.MarketID, 30),
			string(o.Side),
			o.Outcome,
			fmt.Sprintf("%.2f", o.Price),
			fmt.Sprintf("$%.2f", o.Size),
			string(o.Status),
			pnl,
		)
	}

	table.Render()
}

func runwayLabel(days uint32) string {
	if days >= 9999 {
		return "INF"
	}
	return fmt.Sprintf("%dd", days)
}
