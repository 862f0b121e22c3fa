package domain

import "time"

// ActivityType classifies an activity log line.
type ActivityType string

const (
	ActivityInfo      ActivityType = "info"
	ActivityEdge      ActivityType = "edge"
	ActivityOrder     ActivityType = "order"
	ActivityResolved  ActivityType = "resolved"
	ActivityWarning   ActivityType = "warning"
	ActivityError     ActivityType = "error"
	ActivityInference ActivityType = "inference"
)

// ActivityEntry is one timestamped, typed line in the bounded activity log.
type ActivityEntry struct {
	Timestamp time.Time
	Message   string
	Type      ActivityType
}

// Clock returns the entry timestamp formatted the way the operator
// interface displays it.
func (e ActivityEntry) Clock() string {
	return e.Timestamp.Format("[15:04:05]")
}

// BalancePoint is one timestamped balance sample with a display label.
type BalancePoint struct {
	Timestamp time.Time
	Balance   float64
	Label     string
}
