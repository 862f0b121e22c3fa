package ports

import (
	"github.com/amsanchez/edgebot/internal/domain"
)

// Notifier presents cycle results to the operator.
type Notifier interface {
	// NotifyCycle prints the activity delta from one cycle.
	NotifyCycle(delta []domain.ActivityEntry)

	// NotifyStats prints the current derived statistics and ledger.
	NotifyStats(stats domain.BotStats, orders []domain.Order)
}
