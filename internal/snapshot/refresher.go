// backend-go/internal/snapshot/refresher.go
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/shopsight/backend-go/internal/domain"
	"github.com/shopsight/backend-go/internal/repository"
	"github.com/shopsight/backend-go/pkg/logger"
	"golang.org/x/sync/singleflight"
)

var log = logger.ForComponent("snapshot")

// DefaultTTL is the snapshot freshness window.
const DefaultTTL = 5 * time.Minute

// Refresher owns the snapshot lifecycle for all organizations: staleness
// checks, coalesced rebuilds and fire-and-forget background refresh. Reads
// never block on a rebuild; a stale generation stays servable until the
// next one is published.
type Refresher struct {
	repo    repository.SnapshotRepository
	builder *Builder
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]bool
}

func NewRefresher(repo repository.SnapshotRepository, builder *Builder, ttl, rebuildTimeout time.Duration) *Refresher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if rebuildTimeout <= 0 {
		rebuildTimeout = 2 * time.Minute
	}
	return &Refresher{
		repo:     repo,
		builder:  builder,
		ttl:      ttl,
		timeout:  rebuildTimeout,
		now:      time.Now,
		inflight: make(map[string]bool),
	}
}

// WithClock overrides the staleness clock for tests.
func (r *Refresher) WithClock(now func() time.Time) *Refresher {
	r.now = now
	return r
}

// Latest returns the current generation, nil when none exists.
func (r *Refresher) Latest(ctx context.Context, organizationID string) (*domain.InventorySnapshot, error) {
	return r.repo.Latest(ctx, organizationID)
}

// IsStale reports whether the snapshot needs a rebuild.
func (r *Refresher) IsStale(snap *domain.InventorySnapshot) bool {
	return snap == nil || snap.IsStale(r.now(), r.ttl)
}

// Refresh rebuilds the organization's snapshot unless the current one is
// still fresh. Force bypasses the freshness check. Concurrent callers for
// the same organization are coalesced onto a single build.
func (r *Refresher) Refresh(ctx context.Context, organizationID string, force bool, windowDays int) (domain.RefreshResult, error) {
	if !force {
		current, err := r.repo.Latest(ctx, organizationID)
		if err != nil {
			return domain.RefreshResult{}, err
		}
		if current != nil && !current.IsStale(r.now(), r.ttl) {
			return domain.RefreshResult{Skipped: true, ComputedAt: current.ComputedAt}, nil
		}
	}

	v, err, _ := r.group.Do(organizationID, func() (interface{}, error) {
		return r.rebuild(ctx, organizationID, windowDays)
	})
	if err != nil {
		return domain.RefreshResult{}, err
	}

	snap := v.(*domain.InventorySnapshot)
	return domain.RefreshResult{Skipped: false, ComputedAt: snap.ComputedAt}, nil
}

// TriggerAsync starts a background rebuild if none is in flight for the
// organization. A trigger while one is running is a no-op, not a queued
// retry, so concurrent stale reads cannot cause a rebuild storm.
func (r *Refresher) TriggerAsync(organizationID string, windowDays int) {
	r.mu.Lock()
	if r.inflight[organizationID] {
		r.mu.Unlock()
		return
	}
	r.inflight[organizationID] = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.inflight, organizationID)
			r.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if _, err, _ := r.group.Do(organizationID, func() (interface{}, error) {
			return r.rebuild(ctx, organizationID, windowDays)
		}); err != nil {
			// The stale generation stays servable; the next stale read
			// retries once the flag is cleared.
			log.Error().Err(err).Str("organization_id", organizationID).Msg("background snapshot rebuild failed")
		}
	}()
}

// rebuild builds and publishes one generation. A build or save error leaves
// the previous generation untouched; the new one becomes visible only after
// the pointer flip inside Save.
func (r *Refresher) rebuild(ctx context.Context, organizationID string, windowDays int) (*domain.InventorySnapshot, error) {
	started := r.now()

	snap, err := r.builder.Build(ctx, organizationID, windowDays)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Save(ctx, snap); err != nil {
		return nil, err
	}

	log.Info().
		Str("organization_id", organizationID).
		Int("products", len(snap.Products)).
		Int("alerts", len(snap.Alerts)).
		Dur("took", time.Since(started)).
		Msg("snapshot generation published")

	return snap, nil
}
