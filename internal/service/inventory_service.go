// backend-go/internal/service/inventory_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopsight/backend-go/internal/analytics"
	"github.com/shopsight/backend-go/internal/cache"
	"github.com/shopsight/backend-go/internal/domain"
	"github.com/shopsight/backend-go/internal/repository"
	"github.com/shopsight/backend-go/internal/snapshot"
)

// InventoryService is the read façade over the snapshot cache. Reads serve
// the latest generation, possibly stale, and trigger background refresh;
// an explicit date range reruns only the sales windowing on top of the
// structural snapshot.
type InventoryService struct {
	refresher  *snapshot.Refresher
	builder    *snapshot.Builder
	catalog    repository.CatalogRepository
	cache      cache.InventoryViewCache
	windowDays int
}

func NewInventoryService(refresher *snapshot.Refresher, builder *snapshot.Builder, catalog repository.CatalogRepository, cacheImpl cache.InventoryViewCache, defaultWindowDays int) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInventoryViewCache()
	}
	if defaultWindowDays < 1 {
		defaultWindowDays = 30
	}
	return &InventoryService{
		refresher:  refresher,
		builder:    builder,
		catalog:    catalog,
		cache:      cacheImpl,
		windowDays: defaultWindowDays,
	}
}

// GetOverview returns the organization's overview metrics. A nil result
// with nil error means no snapshot exists yet (or no organization was
// resolved); callers render an empty state.
func (s *InventoryService) GetOverview(ctx context.Context, organizationID string, window *domain.DateRange) (*domain.OverviewMetrics, error) {
	if organizationID == "" {
		return nil, nil
	}

	if cached, ok, err := s.cache.GetOverview(ctx, organizationID, window); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get overview failed")
	}

	snap, err := s.refresher.Latest(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
		return nil, nil
	}
	if s.refresher.IsStale(snap) {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
	}

	overview := snap.Overview
	if window != nil {
		if err := s.applyWindowToOverview(ctx, organizationID, snap, *window, &overview); err != nil {
			return nil, err
		}
	}

	if err := s.cache.SetOverview(ctx, organizationID, window, &overview); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set overview failed")
	}

	return &overview, nil
}

// GetProducts returns one filtered, sorted page of the snapshot's product
// rows, with sales figures re-windowed when a date range is supplied.
func (s *InventoryService) GetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter) (*domain.PagedProducts, error) {
	if organizationID == "" {
		return nil, nil
	}

	if cached, ok, err := s.cache.GetProducts(ctx, organizationID, window, filter); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get products failed")
	}

	snap, err := s.refresher.Latest(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
		return &domain.PagedProducts{Products: []domain.ProductSummaryRow{}}, nil
	}
	if s.refresher.IsStale(snap) {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
	}

	rows := snap.Products
	if window != nil {
		rows, err = s.rewindowRows(ctx, organizationID, rows, *window)
		if err != nil {
			return nil, err
		}
	}

	pageRows, total := applyProductQuery(rows, filter)
	page := &domain.PagedProducts{
		Products:   pageRows,
		Total:      total,
		Page:       maxInt(filter.Page, 1),
		PageSize:   filter.PageSize,
		ComputedAt: snap.ComputedAt,
	}
	if page.PageSize < 1 {
		page.PageSize = defaultPageSize
	}

	if err := s.cache.SetProducts(ctx, organizationID, window, filter, page); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set products failed")
	}

	return page, nil
}

// GetAlerts returns the snapshot's alert list truncated to limit. A nil
// slice signals "no snapshot yet", distinct from an empty list.
func (s *InventoryService) GetAlerts(ctx context.Context, organizationID string, limit int) ([]domain.Alert, error) {
	if organizationID == "" {
		return nil, nil
	}

	snap, err := s.refresher.Latest(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
		return nil, nil
	}
	if s.refresher.IsStale(snap) {
		s.refresher.TriggerAsync(organizationID, s.windowDays)
	}

	alerts := snap.Alerts
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}

	out := make([]domain.Alert, len(alerts))
	copy(out, alerts)
	return out, nil
}

// Refresh rebuilds the snapshot, skipping when fresh unless forced. A
// successful rebuild invalidates the organization's response cache.
func (s *InventoryService) Refresh(ctx context.Context, organizationID string, force bool, windowDays int) (domain.RefreshResult, error) {
	if windowDays < 1 {
		windowDays = s.windowDays
	}

	result, err := s.refresher.Refresh(ctx, organizationID, force, windowDays)
	if err != nil {
		return domain.RefreshResult{}, err
	}

	if !result.Skipped {
		if err := s.cache.InvalidateOrganization(ctx, organizationID); err != nil {
			log.Warn().Err(err).Msg("inventory: cache invalidation failed")
		}
	}

	return result, nil
}

// windowSales primes a cost resolver once for the request and runs the
// sales-only pass for the window and its predecessor.
func (s *InventoryService) windowSales(ctx context.Context, organizationID string, window domain.DateRange) (cur, prev analytics.SalesResult, err error) {
	window = window.Normalize()

	variants, err := s.catalog.ListVariants(ctx, organizationID)
	if err != nil {
		return cur, prev, err
	}
	overrides, err := s.catalog.ListCostOverrides(ctx, organizationID)
	if err != nil {
		return cur, prev, err
	}
	costs := analytics.NewCostResolver(overrides)

	cur, err = s.builder.WindowSales(ctx, organizationID, window, variants, costs)
	if err != nil {
		return cur, prev, err
	}
	prev, err = s.builder.WindowSales(ctx, organizationID, window.Previous(), variants, costs)
	return cur, prev, err
}

// applyWindowToOverview overrides the sales-derived overview fields for an
// explicit window. Structural fields (valuation, health, coverage, dead
// stock) stay as computed at build time.
func (s *InventoryService) applyWindowToOverview(ctx context.Context, organizationID string, snap *domain.InventorySnapshot, window domain.DateRange, overview *domain.OverviewMetrics) error {
	cur, prev, err := s.windowSales(ctx, organizationID, window)
	if err != nil {
		return err
	}

	var unitsSold, prevUnits int
	var revenue, cogs, prevRevenue float64
	for _, totals := range cur.ByProduct {
		unitsSold += totals.Units
		revenue += totals.Revenue
		cogs += totals.COGS
	}
	for _, totals := range prev.ByProduct {
		prevUnits += totals.Units
		prevRevenue += totals.Revenue
	}

	overview.UnitsSold = unitsSold
	overview.PeriodRevenue = revenue
	overview.PeriodCOGS = cogs
	overview.RevenueChange = analytics.ChangePercent(revenue, prevRevenue)
	overview.UnitsChange = analytics.ChangePercent(float64(unitsSold), float64(prevUnits))

	performerInputs := make([]analytics.PerformerInput, 0, len(snap.Products))
	for _, row := range snap.Products {
		totals := cur.ByProduct[row.ProductID]
		performerInputs = append(performerInputs, analytics.PerformerInput{
			ProductID:     row.ProductID,
			Title:         row.Title,
			UnitsSold:     totals.Units,
			PeriodRevenue: totals.Revenue,
			PrevRevenue:   prev.ByProduct[row.ProductID].Revenue,
		})
	}
	overview.BestPerformers, overview.WorstPerformers, overview.Trending = analytics.RankPerformers(performerInputs)

	return nil
}

// rewindowRows overrides units sold and period revenue on copies of the
// snapshot rows for an explicit window. Structural fields are untouched.
func (s *InventoryService) rewindowRows(ctx context.Context, organizationID string, rows []domain.ProductSummaryRow, window domain.DateRange) ([]domain.ProductSummaryRow, error) {
	cur, _, err := s.windowSales(ctx, organizationID, window)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductSummaryRow, len(rows))
	for i, row := range rows {
		totals := cur.ByProduct[row.ProductID]
		row.UnitsSold = totals.Units
		row.PeriodRevenue = totals.Revenue
		row.LastSoldAt = totals.LastSoldAt

		variants := make([]domain.VariantSummaryRow, len(row.Variants))
		for j, v := range row.Variants {
			variantTotals := cur.ByVariant[v.VariantID]
			v.UnitsSold = variantTotals.Units
			v.PeriodRevenue = variantTotals.Revenue
			v.LastSoldAt = variantTotals.LastSoldAt
			variants[j] = v
		}
		row.Variants = variants
		out[i] = row
	}

	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
