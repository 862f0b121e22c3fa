package domain

import "time"

// OrderStatus is the lifecycle state of a speculative position.
// The simulated path only exercises Filled → Resolved; Pending, Cancelled
// and Failed exist so the ledger can represent real execution later.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusFilled    OrderStatus = "FILLED"
	StatusResolved  OrderStatus = "RESOLVED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusFailed    OrderStatus = "FAILED"
)

// OrderSide is the direction of a position.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// Order is a simulated position in one market. Orders are created Filled by
// the cycle orchestrator, mutated exactly once by the resolution step, and
// retained in a capped ledger.
type Order struct {
	ID         string
	MarketID   string
	MarketName string
	Side       OrderSide
	Outcome    string
	Price      float64 // entry price, the predictor's fair price
	Size       float64 // USDC
	Status     OrderStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time // nil until Resolved
	PnL        *float64   // nil until Resolved
}
