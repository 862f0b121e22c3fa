// Package storage persists the cycle audit trail to SQLite.
//
// The journal is append-only from the engine's point of view: cycles,
// their activity deltas and resolved orders go in, nothing is read back at
// runtime. Operators inspect it with the sqlite3 shell.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amsanchez/edgebot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- One row per completed cycle
CREATE TABLE IF NOT EXISTS cycles (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle           INTEGER  NOT NULL,
    recorded_at     DATETIME NOT NULL,
    balance         REAL     NOT NULL,
    total_pnl       REAL     NOT NULL,
    total_trades    INTEGER  NOT NULL,
    wins            INTEGER  NOT NULL,
    losses          INTEGER  NOT NULL,
    markets_scanned INTEGER  NOT NULL,
    api_costs       REAL     NOT NULL,
    win_rate        REAL     NOT NULL,
    sharpe_ratio    REAL     NOT NULL
);

-- Activity delta lines, tied to the cycle counter
CREATE TABLE IF NOT EXISTS activity (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle       INTEGER  NOT NULL,
    occurred_at DATETIME NOT NULL,
    type        TEXT     NOT NULL,
    message     TEXT     NOT NULL
);

-- One row per resolved order
CREATE TABLE IF NOT EXISTS orders (
    order_id    TEXT PRIMARY KEY,
    market_id   TEXT     NOT NULL,
    market_name TEXT,
    side        TEXT     NOT NULL,
    outcome     TEXT,
    price       REAL     NOT NULL,
    size        REAL     NOT NULL,
    status      TEXT     NOT NULL,
    pnl         REAL,
    created_at  DATETIME NOT NULL,
    resolved_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_cycles_at   ON cycles(recorded_at DESC);
CREATE INDEX IF NOT EXISTS idx_activity_cy ON activity(cycle);
CREATE INDEX IF NOT EXISTS idx_orders_at   ON orders(created_at DESC);
`

// Journal implements ports.CycleJournal on SQLite (pure Go, no CGo).
type Journal struct {
	db *sql.DB
}

// NewJournal opens (or creates) the database at the given DSN and applies
// the schema.
func NewJournal(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewJournal: open %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewJournal: apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// RecordCycle appends one cycle summary row plus one activity row per
// delta entry, atomically.
func (j *Journal) RecordCycle(ctx context.Context, stats domain.BotStats, delta []domain.ActivityEntry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.RecordCycle: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cycles (cycle, recorded_at, balance, total_pnl, total_trades,
		                    wins, losses, markets_scanned, api_costs, win_rate, sharpe_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.Cycle, time.Now().UTC(), stats.CurrentBalance, stats.TotalPnL,
		stats.TotalTrades, stats.Wins, stats.Losses, stats.MarketsScanned,
		stats.APICosts, stats.WinRate, stats.SharpeRatio,
	)
	if err != nil {
		return fmt.Errorf("storage.RecordCycle: insert cycle %d: %w", stats.Cycle, err)
	}

	for _, entry := range delta {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO activity (cycle, occurred_at, type, message)
			VALUES (?, ?, ?, ?)`,
			stats.Cycle, entry.Timestamp.UTC(), string(entry.Type), entry.Message,
		)
		if err != nil {
			return fmt.Errorf("storage.RecordCycle: insert activity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.RecordCycle: commit: %w", err)
	}
	return nil
}

// RecordOrder upserts one order row, keyed by order id so a re-record of
// the same order after resolution overwrites the earlier state.
func (j *Journal) RecordOrder(ctx context.Context, order domain.Order) error {
	var resolvedAt any
	if order.ResolvedAt != nil {
		resolvedAt = order.ResolvedAt.UTC()
	}
	var pnl any
	if order.PnL != nil {
		pnl = *order.PnL
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, market_id, market_name, side, outcome,
		                    price, size, status, pnl, created_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET
			status      = excluded.status,
			pnl         = excluded.pnl,
			resolved_at = excluded.resolved_at`,
		order.ID, order.MarketID, order.MarketName, string(order.Side),
		order.Outcome, order.Price, order.Size, string(order.Status),
		pnl, order.CreatedAt.UTC(), resolvedAt,
	)
	if err != nil {
		return fmt.Errorf("storage.RecordOrder: %s: %w", order.ID, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
