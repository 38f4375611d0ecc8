// backend-go/internal/snapshot/builder.go
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend-go/internal/analytics"
	"github.com/shopsight/backend-go/internal/domain"
	"github.com/shopsight/backend-go/internal/repository"
)

// Builder computes a full snapshot generation for one organization: sales
// rollups, classification, metrics and alerts. All state is scoped to one
// Build call; nothing is shared across organizations.
type Builder struct {
	catalog repository.CatalogRepository
	orders  repository.OrderRepository
	now     func() time.Time
}

func NewBuilder(catalog repository.CatalogRepository, orders repository.OrderRepository) *Builder {
	return &Builder{catalog: catalog, orders: orders, now: time.Now}
}

// WithClock overrides the build clock. Tests use this to pin computedAt.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build runs the expensive structural pass and returns a new immutable
// generation stamped with the build time. It never mutates prior
// generations.
func (b *Builder) Build(ctx context.Context, organizationID string, windowDays int) (*domain.InventorySnapshot, error) {
	if windowDays < 1 {
		windowDays = 30
	}
	computedAt := b.now()
	window := domain.LastDays(computedAt, windowDays)

	products, err := b.catalog.ListProducts(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("snapshot build: %w", err)
	}
	variants, err := b.catalog.ListVariants(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("snapshot build: %w", err)
	}
	levels, err := b.catalog.ListInventoryLevels(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("snapshot build: %w", err)
	}
	overrides, err := b.catalog.ListCostOverrides(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("snapshot build: %w", err)
	}

	costs := analytics.NewCostResolver(overrides)

	sales, err := b.WindowSales(ctx, organizationID, window, variants, costs)
	if err != nil {
		return nil, err
	}
	prevSales, err := b.WindowSales(ctx, organizationID, window.Previous(), variants, costs)
	if err != nil {
		return nil, err
	}

	// Dead stock always looks back a fixed 90 days, independent of the
	// requested analysis window.
	lookback, err := b.WindowSales(ctx, organizationID, domain.LastDays(computedAt, analytics.DeadStockLookbackDays), variants, costs)
	if err != nil {
		return nil, err
	}
	soldRecently := make(map[string]bool, len(lookback.ByVariant))
	for variantID := range lookback.ByVariant {
		soldRecently[variantID] = true
	}

	snap := assemble(assembleInput{
		organizationID: organizationID,
		computedAt:     computedAt,
		windowDays:     windowDays,
		products:       products,
		variants:       variants,
		levels:         levels,
		costs:          costs,
		sales:          sales,
		prevSales:      prevSales,
		soldRecently:   soldRecently,
	})
	snap.ID = uuid.NewString()

	return snap, nil
}

// WindowSales runs the cheap sales-only pass for an arbitrary window. The
// query façade reuses it for per-request date ranges without touching the
// structural snapshot fields.
func (b *Builder) WindowSales(ctx context.Context, organizationID string, window domain.DateRange, variants []domain.Variant, costs *analytics.CostResolver) (analytics.SalesResult, error) {
	window = window.Normalize()

	orders, err := b.orders.ListOrdersInWindow(ctx, organizationID, window)
	if err != nil {
		return analytics.SalesResult{}, fmt.Errorf("snapshot sales window: %w", err)
	}

	orderIDs := make([]string, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	items, err := b.orders.ListLineItems(ctx, orderIDs)
	if err != nil {
		return analytics.SalesResult{}, fmt.Errorf("snapshot sales window: %w", err)
	}

	return analytics.AggregateSales(orders, items, variants, costs), nil
}

type assembleInput struct {
	organizationID string
	computedAt     time.Time
	windowDays     int
	products       []domain.Product
	variants       []domain.Variant
	levels         []domain.InventoryLevel
	costs          *analytics.CostResolver
	sales          analytics.SalesResult
	prevSales      analytics.SalesResult
	soldRecently   map[string]bool
}

func assemble(in assembleInput) *domain.InventorySnapshot {
	analysisDays := domain.LastDays(in.computedAt, in.windowDays).Days()

	levelByVariant := make(map[string]domain.InventoryLevel, len(in.levels))
	for _, l := range in.levels {
		levelByVariant[l.VariantID] = l
	}

	// Resolved availability per variant; negative inventory is clamped,
	// never surfaced.
	availableByVariant := make(map[string]int, len(in.variants))
	stockByVariant := make(map[string]int, len(in.variants))
	for _, v := range in.variants {
		available := v.InventoryQuantity
		stock := v.InventoryQuantity
		if l, ok := levelByVariant[v.ID]; ok {
			available = l.Available
			stock = l.Available + l.Committed
		}
		if available < 0 {
			available = 0
		}
		if stock < available {
			stock = available
		}
		availableByVariant[v.ID] = available
		stockByVariant[v.ID] = stock
	}

	variantsByProduct := make(map[string][]domain.Variant, len(in.products))
	for _, v := range in.variants {
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], v)
	}

	stats := make([]analytics.ProductStat, len(in.products))
	for i, p := range in.products {
		totals := in.sales.ByProduct[p.ID]
		stats[i] = analytics.ProductStat{ProductID: p.ID, Revenue: totals.Revenue, Units: totals.Units}
	}
	abc := analytics.AssignABC(stats)

	var (
		totalValue    float64
		totalCOGS     float64
		totalUnits    int
		healthyCount  int
		unitsSold     int
		periodRevenue float64
		periodCOGS    float64
	)

	rows := make([]domain.ProductSummaryRow, 0, len(in.products))
	signals := make([]analytics.VariantSignal, 0, len(in.variants))
	performerInputs := make([]analytics.PerformerInput, 0, len(in.products))

	for _, p := range in.products {
		productVariants := variantsByProduct[p.ID]
		productTotals := in.sales.ByProduct[p.ID]
		prevTotals := in.prevSales.ByProduct[p.ID]

		var (
			productStock     int
			productAvailable int
			price            float64
			cost             float64
		)
		variantRows := make([]domain.VariantSummaryRow, 0, len(productVariants))
		for i, v := range productVariants {
			available := availableByVariant[v.ID]
			unitCost := in.costs.UnitCost(v)
			variantTotals := in.sales.ByVariant[v.ID]

			productStock += stockByVariant[v.ID]
			productAvailable += available
			if i == 0 {
				price = v.Price
				cost = unitCost
			}

			totalValue += float64(available) * v.Price
			totalCOGS += float64(available) * unitCost
			totalUnits += available

			variantAvgDaily := float64(variantTotals.Units) / float64(analysisDays)
			if analytics.StockStatusFor(available, variantAvgDaily) == domain.StockStatusHealthy {
				healthyCount++
			}

			var stockFreshAt *time.Time
			if l, ok := levelByVariant[v.ID]; ok {
				if fresh, ok := l.FreshAt(); ok {
					stockFreshAt = &fresh
				}
			}

			variantRows = append(variantRows, domain.VariantSummaryRow{
				VariantID:     v.ID,
				SKU:           v.SKU,
				Title:         v.Title,
				Price:         v.Price,
				Cost:          unitCost,
				Available:     available,
				UnitsSold:     variantTotals.Units,
				PeriodRevenue: variantTotals.Revenue,
				LastSoldAt:    variantTotals.LastSoldAt,
				StockFreshAt:  stockFreshAt,
			})

			signals = append(signals, analytics.VariantSignal{
				VariantID:     v.ID,
				ProductID:     p.ID,
				SKU:           v.SKU,
				Title:         p.Title,
				Available:     available,
				AvgDailySales: variantAvgDaily,
			})
		}

		avgDailySales := float64(productTotals.Units) / float64(analysisDays)
		margin := 0.0
		if price > 0 {
			margin = analytics.Round1(100 * (price - cost) / price)
		}

		rows = append(rows, domain.ProductSummaryRow{
			ProductID:     p.ID,
			Title:         p.Title,
			Handle:        p.Handle,
			ProductType:   p.ProductType,
			Vendor:        p.Vendor,
			FeaturedImage: p.FeaturedImage,
			Stock:         productStock,
			Available:     productAvailable,
			ReorderPoint:  analytics.ReorderPoint(avgDailySales),
			StockStatus:   analytics.StockStatusFor(productAvailable, avgDailySales),
			Price:         price,
			Cost:          cost,
			Margin:        margin,
			ABCCategory:   abc[p.ID],
			UnitsSold:     productTotals.Units,
			PeriodRevenue: productTotals.Revenue,
			LastSoldAt:    productTotals.LastSoldAt,
			Variants:      variantRows,
		})

		unitsSold += productTotals.Units
		periodRevenue += productTotals.Revenue
		periodCOGS += productTotals.COGS

		performerInputs = append(performerInputs, analytics.PerformerInput{
			ProductID:     p.ID,
			Title:         p.Title,
			UnitsSold:     productTotals.Units,
			PeriodRevenue: productTotals.Revenue,
			PrevRevenue:   prevTotals.Revenue,
		})
	}

	var prevRevenue float64
	var prevUnits int
	for _, totals := range in.prevSales.ByProduct {
		prevRevenue += totals.Revenue
		prevUnits += totals.Units
	}

	best, worst, trending := analytics.RankPerformers(performerInputs)

	overview := domain.OverviewMetrics{
		TotalValue:        totalValue,
		TotalCOGS:         totalCOGS,
		TotalSKUs:         len(in.variants),
		HealthScore:       analytics.HealthScore(healthyCount, len(in.variants)),
		TurnoverRate:      analytics.TurnoverRate(periodCOGS, analysisDays, totalCOGS),
		StockCoverageDays: analytics.StockCoverageDays(totalUnits, float64(unitsSold)/float64(analysisDays)),
		DeadStock:         analytics.CountDeadStock(availableByVariant, in.soldRecently),
		UnitsSold:         unitsSold,
		PeriodRevenue:     periodRevenue,
		PeriodCOGS:        periodCOGS,
		RevenueChange:     analytics.ChangePercent(periodRevenue, prevRevenue),
		UnitsChange:       analytics.ChangePercent(float64(unitsSold), float64(prevUnits)),
		BestPerformers:    best,
		WorstPerformers:   worst,
		Trending:          trending,
	}

	return &domain.InventorySnapshot{
		OrganizationID:     in.organizationID,
		ComputedAt:         in.computedAt,
		AnalysisWindowDays: in.windowDays,
		Overview:           overview,
		Products:           rows,
		Alerts:             analytics.BuildAlerts(signals),
	}
}
