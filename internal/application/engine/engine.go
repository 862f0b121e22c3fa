// Package engine implements the trading bot's cycle engine: the start/stop
// lifecycle, the per-cycle scan→predict→order→resolve pipeline, the capped
// order ledger and activity log, and the derived statistics record.
//
// The entire engine state lives behind a single mutex; every public
// operation holds it for its full duration. At most one cycle runs at a
// time and readers always observe either the pre-cycle or the fully
// post-cycle state. The lock is held across the collaborator network calls
// inside a cycle — a deliberate simplicity-over-latency tradeoff for a
// single-operator tool.
package engine

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/amsanchez/edgebot/config"
	"github.com/amsanchez/edgebot/internal/domain"
	"github.com/amsanchez/edgebot/internal/ports"
)

const (
	activityLogCap    = 500
	balanceHistoryCap = 500
	ledgerCap         = 50

	marketPageSize     = 100
	maxMarketsPerCycle = 10

	// Below this order size a detected edge is surfaced but not acted on.
	minOrderSize = 1.0
)

// Factories builds the two external collaborator clients from a bot config.
// Configure calls them every time the operator swaps credentials.
type Factories struct {
	Markets   func(bot config.Bot, api config.APIConfig) ports.MarketProvider
	Predictor func(bot config.Bot, api config.APIConfig) ports.Predictor
}

// Engine owns all bot state. Construct once at process start and thread it
// to every operation; the collaborator clients stay nil until the operator
// calls Configure, and an unconfigured engine runs empty cycles.
type Engine struct {
	mu sync.Mutex

	cfg       config.Bot
	api       config.APIConfig
	sim       config.SimulationConfig
	factories Factories

	markets   ports.MarketProvider
	predictor ports.Predictor
	outcomes  ports.OutcomeSource

	stats    domain.BotStats
	orders   []domain.Order
	activity *domain.BoundedLog[domain.ActivityEntry]
	balances *domain.BoundedLog[domain.BalancePoint]

	running   bool
	startTime time.Time

	// Cumulative edge samples across all parsed predictions, for avg_edge.
	edgeSum   float64
	edgeCount uint64

	now func() time.Time
}

// New creates an idle, unconfigured engine. A nil outcomes source selects
// the default drift source.
func New(cfg *config.Config, factories Factories, outcomes ports.OutcomeSource) *Engine {
	if outcomes == nil {
		outcomes = NewDriftSource()
	}

	e := &Engine{
		cfg:       cfg.Bot,
		api:       cfg.API,
		sim:       cfg.Simulation,
		factories: factories,
		outcomes:  outcomes,
		activity:  domain.NewBoundedLog[domain.ActivityEntry](activityLogCap),
		balances:  domain.NewBoundedLog[domain.BalancePoint](balanceHistoryCap),
		now:       time.Now,
	}

	e.stats = domain.BotStats{
		CurrentBalance: cfg.Bot.InitialBalance,
		InitialBalance: cfg.Bot.InitialBalance,
		TotalPnLPct:    "+$0.0k",
		RunwayDays:     runwaySentinelDays,
		Uptime:         "00:00:00",
		PID:            uint32(os.Getpid()),
	}

	e.balances.Append(domain.BalancePoint{
		Timestamp: e.now(),
		Balance:   cfg.Bot.InitialBalance,
		Label:     "0h",
	})

	return e
}

// Configure replaces the bot config and reconstructs both collaborator
// clients from the new credentials. Safe to call while running; the new
// clients take effect on the next cycle.
func (e *Engine) Configure(bot config.Bot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg = bot
	if e.factories.Markets != nil {
		e.markets = e.factories.Markets(bot, e.api)
	}
	if e.factories.Predictor != nil {
		e.predictor = e.factories.Predictor(bot, e.api)
	}
	e.addActivity("Configuration updated successfully", domain.ActivityInfo)
}

// Start moves the engine from idle to running and arms the uptime clock.
// Idempotent while running: the start time is re-armed only from idle.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}
	e.running = true
	e.startTime = e.now()

	msg := "Bot started"
	if e.cfg.SurvivalMode {
		msg = "Bot started - Survival Mode active"
	}
	e.addActivity(msg, domain.ActivityInfo)
}

// Stop moves the engine to idle. A cycle already in flight finishes; only
// future cycles are gated.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
	e.addActivity("Bot stopped", domain.ActivityWarning)
}

// IsRunning reports whether the engine will do work on the next cycle.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Config returns the current bot configuration.
func (e *Engine) Config() config.Bot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Stats returns the current derived statistics record with uptime
// recomputed on demand.
func (e *Engine) Stats() domain.BotStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Uptime = e.uptimeLocked()
	return e.stats
}

// Uptime returns the running time formatted HH:MM:SS, clamped to zero when
// idle.
func (e *Engine) Uptime() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.uptimeLocked()
}

// ActivityLog returns a copy of the retained activity entries, oldest first.
func (e *Engine) ActivityLog() []domain.ActivityEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Entries()
}

// BalanceHistory returns a copy of the retained balance samples.
func (e *Engine) BalanceHistory() []domain.BalancePoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balances.Entries()
}

// Orders returns a copy of the order ledger, oldest first.
func (e *Engine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

func (e *Engine) uptimeLocked() string {
	if !e.running {
		return "00:00:00"
	}
	elapsed := e.now().Sub(e.startTime)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// addActivity appends a typed log line and returns it so callers can build
// the per-cycle delta. Must be called with the lock held.
func (e *Engine) addActivity(message string, typ domain.ActivityType) domain.ActivityEntry {
	entry := domain.ActivityEntry{
		Timestamp: e.now(),
		Message:   message,
		Type:      typ,
	}
	e.activity.Append(entry)
	return entry
}
