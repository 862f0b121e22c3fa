package domain

// BotStats is the single derived-metrics record surfaced to the operator.
// Everything except the monotonic counters (wins, losses, total trades,
// markets scanned, cycle, API costs) is recomputed from the ledger and the
// engine counters at the end of every cycle — it is a projection, not a
// source of truth.
type BotStats struct {
	CurrentBalance float64
	InitialBalance float64
	TotalPnL       float64
	TotalPnLPct    string // presentation form, derived from TotalPnL
	APICosts       float64
	WinRate        float64 // percent
	Wins           uint32
	Losses         uint32
	TotalTrades    uint32
	MarketsScanned uint64
	AvgBet         float64
	BestTrade      float64
	WorstTrade     float64
	SharpeRatio    float64 // rough annualized approximation, not a risk metric
	AvgEdge        float64
	DailyAPICost   float64
	RunwayDays     uint32
	Uptime         string // HH:MM:SS
	Cycle          uint32
	PID            uint32
}
