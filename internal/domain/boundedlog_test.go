package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedLog_AppendUnderCap(t *testing.T) {
	l := NewBoundedLog[int](10)
	for i := 0; i < 5; i++ {
		l.Append(i)
	}

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Entries())
}

func TestBoundedLog_EvictsOldestFirst(t *testing.T) {
	l := NewBoundedLog[string](3)
	for i := 1; i <= 7; i++ {
		l.Append(fmt.Sprintf("e%d", i))
	}

	// Final length = min(N, C) and survivors are the last C in order.
	require.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"e5", "e6", "e7"}, l.Entries())

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "e7", last)
}

func TestBoundedLog_LengthIsMinOfAppendsAndCap(t *testing.T) {
	for _, n := range []int{0, 1, 499, 500, 501, 1200} {
		l := NewBoundedLog[int](500)
		for i := 0; i < n; i++ {
			l.Append(i)
		}
		want := n
		if want > 500 {
			want = 500
		}
		assert.Equal(t, want, l.Len(), "appends=%d", n)
	}
}

func TestBoundedLog_EntriesReturnsCopy(t *testing.T) {
	l := NewBoundedLog[int](5)
	l.Append(1)
	l.Append(2)

	snapshot := l.Entries()
	snapshot[0] = 99
	assert.Equal(t, []int{1, 2}, l.Entries())
}

func TestBoundedLog_Empty(t *testing.T) {
	l := NewBoundedLog[int](5)
	_, ok := l.Last()
	assert.False(t, ok)
	assert.Empty(t, l.Entries())
}

func TestNewBoundedLog_PanicsOnBadCapacity(t *testing.T) {
	assert.Panics(t, func() { NewBoundedLog[int](0) })
	assert.Panics(t, func() { NewBoundedLog[int](-1) })
}
