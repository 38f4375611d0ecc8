package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeNormalizeRepairsReversedBounds(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	r := DateRange{Start: end, End: start}.Normalize()
	assert.True(t, r.Start.Equal(start))
	assert.True(t, r.End.Equal(end))

	// Already ordered ranges pass through unchanged.
	r = DateRange{Start: start, End: end}.Normalize()
	assert.True(t, r.Start.Equal(start))
}

func TestDateRangeDays(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DateRange{Start: start, End: start.AddDate(0, 0, 30)}.Days())
	// Partial days round up.
	assert.Equal(t, 2, DateRange{Start: start, End: start.Add(25 * time.Hour)}.Days())
	// Zero-length windows still count as one day.
	assert.Equal(t, 1, DateRange{Start: start, End: start}.Days())
}

func TestDateRangePrevious(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: start.AddDate(0, 0, 30)}

	prev := r.Previous()
	assert.True(t, prev.End.Equal(r.Start))
	assert.Equal(t, r.End.Sub(r.Start), prev.End.Sub(prev.Start))
}

func TestLastDays(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	r := LastDays(now, 30)
	assert.True(t, r.End.Equal(now))
	assert.Equal(t, 30, r.Days())

	assert.Equal(t, 1, LastDays(now, 0).Days())
}

func TestSnapshotIsStale(t *testing.T) {
	computedAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	snap := &InventorySnapshot{ComputedAt: computedAt}
	ttl := 5 * time.Minute

	assert.False(t, snap.IsStale(computedAt, ttl))
	assert.False(t, snap.IsStale(computedAt.Add(ttl), ttl))
	assert.True(t, snap.IsStale(computedAt.Add(ttl+time.Second), ttl))
}
