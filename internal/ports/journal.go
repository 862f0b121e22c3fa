package ports

import (
	"context"

	"github.com/amsanchez/edgebot/internal/domain"
)

// CycleJournal is a write-only audit trail of cycle outcomes. The engine
// never reads it back; it exists so an operator can inspect run history
// out of band.
type CycleJournal interface {
	// RecordCycle appends one cycle summary with the activity delta it produced.
	RecordCycle(ctx context.Context, stats domain.BotStats, delta []domain.ActivityEntry) error

	// RecordOrder appends a resolved order.
	RecordOrder(ctx context.Context, order domain.Order) error
}
