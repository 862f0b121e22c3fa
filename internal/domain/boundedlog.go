package domain

import "fmt"

// BoundedLog is an append-only sequence with a capacity cap. When an append
// would exceed the cap the oldest entries are dropped first, preserving the
// relative order of the survivors. Appends are amortized O(1); the engine's
// lock covers concurrent access.
type BoundedLog[T any] struct {
	capacity int
	entries  []T
}

// NewBoundedLog creates a log that retains at most capacity entries.
// A non-positive capacity is a programming error.
func NewBoundedLog[T any](capacity int) *BoundedLog[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("domain.NewBoundedLog: capacity must be positive, got %d", capacity))
	}
	return &BoundedLog[T]{capacity: capacity}
}

// Append adds an entry, evicting the oldest if the log is full.
func (l *BoundedLog[T]) Append(v T) {
	l.entries = append(l.entries, v)
	if len(l.entries) > l.capacity {
		drop := len(l.entries) - l.capacity
		l.entries = append(l.entries[:0], l.entries[drop:]...)
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (l *BoundedLog[T]) Entries() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent entry, if any.
func (l *BoundedLog[T]) Last() (T, bool) {
	if len(l.entries) == 0 {
		var zero T
		return zero, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of retained entries.
func (l *BoundedLog[T]) Len() int {
	return len(l.entries)
}

// Cap returns the capacity cap.
func (l *BoundedLog[T]) Cap() int {
	return l.capacity
}
