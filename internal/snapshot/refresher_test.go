package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopsight/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	mu      sync.Mutex
	current map[string]*domain.InventorySnapshot
	saveErr error
	saves   int
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{current: make(map[string]*domain.InventorySnapshot)}
}

func (f *fakeSnapshots) Save(ctx context.Context, snapshot *domain.InventorySnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.current[snapshot.OrganizationID] = snapshot
	return nil
}

func (f *fakeSnapshots) Latest(ctx context.Context, organizationID string) (*domain.InventorySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current[organizationID], nil
}

func (f *fakeSnapshots) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func newTestRefresher(repo *fakeSnapshots, catalog *fakeCatalog, clock time.Time) *Refresher {
	builder := NewBuilder(catalog, &fakeOrders{}).WithClock(func() time.Time { return clock })
	return NewRefresher(repo, builder, DefaultTTL, time.Minute).
		WithClock(func() time.Time { return clock })
}

func TestIsStaleMonotonic(t *testing.T) {
	computedAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	snap := &domain.InventorySnapshot{ComputedAt: computedAt}

	offsets := []time.Duration{
		0,
		DefaultTTL - time.Second,
		DefaultTTL,
		DefaultTTL + time.Second,
		time.Hour,
	}

	wasStale := false
	for _, offset := range offsets {
		stale := snap.IsStale(computedAt.Add(offset), DefaultTTL)
		// Staleness never flips back as the clock advances.
		assert.False(t, wasStale && !stale, "went fresh again at offset %s", offset)
		wasStale = stale
	}
	assert.False(t, snap.IsStale(computedAt.Add(DefaultTTL), DefaultTTL))
	assert.True(t, snap.IsStale(computedAt.Add(DefaultTTL+time.Second), DefaultTTL))
}

func TestIsStaleNilSnapshot(t *testing.T) {
	r := NewRefresher(newFakeSnapshots(), NewBuilder(&fakeCatalog{}, &fakeOrders{}), DefaultTTL, time.Minute)
	assert.True(t, r.IsStale(nil))
}

func TestRefreshSkipsFreshGeneration(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeSnapshots()
	repo.current["org"] = &domain.InventorySnapshot{OrganizationID: "org", ComputedAt: clock.Add(-time.Minute)}

	catalog := &fakeCatalog{}
	r := newTestRefresher(repo, catalog, clock)

	result, err := r.Refresh(context.Background(), "org", false, 30)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, 0, catalog.buildCalls())
}

func TestRefreshForceRebuildsFreshGeneration(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeSnapshots()
	repo.current["org"] = &domain.InventorySnapshot{OrganizationID: "org", ComputedAt: clock.Add(-time.Minute)}

	catalog := &fakeCatalog{}
	r := newTestRefresher(repo, catalog, clock)

	result, err := r.Refresh(context.Background(), "org", true, 30)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.True(t, result.ComputedAt.Equal(clock))
	assert.Equal(t, 1, catalog.buildCalls())
}

func TestRefreshRebuildsStaleGeneration(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeSnapshots()
	repo.current["org"] = &domain.InventorySnapshot{OrganizationID: "org", ComputedAt: clock.Add(-time.Hour)}

	catalog := &fakeCatalog{}
	r := newTestRefresher(repo, catalog, clock)

	result, err := r.Refresh(context.Background(), "org", false, 30)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, repo.saveCount())
}

func TestRefreshFailureKeepsPriorGeneration(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	prior := &domain.InventorySnapshot{ID: "gen-1", OrganizationID: "org", ComputedAt: clock.Add(-time.Hour)}

	repo := newFakeSnapshots()
	repo.current["org"] = prior
	repo.saveErr = errors.New("write failed")

	r := newTestRefresher(repo, &fakeCatalog{}, clock)

	_, err := r.Refresh(context.Background(), "org", true, 30)
	require.Error(t, err)

	latest, err := r.Latest(context.Background(), "org")
	require.NoError(t, err)
	assert.Equal(t, "gen-1", latest.ID)
}

func TestTriggerAsyncCoalescesWhileInFlight(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	gate := make(chan struct{})
	catalog := &fakeCatalog{gate: gate}
	repo := newFakeSnapshots()
	r := newTestRefresher(repo, catalog, clock)

	r.TriggerAsync("org", 30)

	// Wait for the first rebuild to park inside the builder.
	require.Eventually(t, func() bool { return catalog.buildCalls() == 1 }, time.Second, 5*time.Millisecond)

	// Repeated triggers while one is running must not queue more work.
	r.TriggerAsync("org", 30)
	r.TriggerAsync("org", 30)

	close(gate)
	require.Eventually(t, func() bool { return repo.saveCount() == 1 }, time.Second, 5*time.Millisecond)

	// Give any wrongly queued rebuild a chance to show up.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, catalog.buildCalls())
}

func TestTriggerAsyncRunsAgainAfterCompletion(t *testing.T) {
	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{}
	repo := newFakeSnapshots()
	r := newTestRefresher(repo, catalog, clock)

	r.TriggerAsync("org", 30)
	require.Eventually(t, func() bool { return repo.saveCount() == 1 }, time.Second, 5*time.Millisecond)

	r.TriggerAsync("org", 30)
	require.Eventually(t, func() bool { return repo.saveCount() == 2 }, time.Second, 5*time.Millisecond)
}
