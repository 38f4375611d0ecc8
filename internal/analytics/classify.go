// backend-go/internal/analytics/classify.go
package analytics

import (
	"math"
	"sort"

	"github.com/shopsight/backend-go/internal/domain"
)

const (
	// LeadTimeDays is the assumed replenishment lead time.
	LeadTimeDays = 7
	// SafetyStockDays is the demand buffer held on top of lead time.
	SafetyStockDays = 3
	// DeadStockLookbackDays is the fixed trailing window for dead-stock
	// detection, independent of the caller's analysis window.
	DeadStockLookbackDays = 90

	abcRevenueCutoffA = 0.80
	abcRevenueCutoffB = 0.95
	abcRankCutoffA    = 0.20
	abcRankCutoffB    = 0.50

	// Thresholds for products with no recent sales. These are a separate
	// policy from the reorder-point constants above; keep them that way.
	noSalesCriticalBelow = 5
	noSalesLowBelow      = 20
)

// ProductStat is the per-product input to ABC segmentation.
type ProductStat struct {
	ProductID string
	Revenue   float64
	Units     int
}

// AssignABC segments the whole product set into Pareto tiers. The fallback
// chain is fixed: cumulative revenue share when any revenue exists, then
// cumulative unit share, then pure id-rank position so brand-new stores
// still get a total, deterministic assignment.
func AssignABC(stats []ProductStat) map[string]domain.ABCCategory {
	out := make(map[string]domain.ABCCategory, len(stats))
	if len(stats) == 0 {
		return out
	}

	var totalRevenue float64
	var totalUnits int
	for _, s := range stats {
		totalRevenue += s.Revenue
		totalUnits += s.Units
	}

	ranked := make([]ProductStat, len(stats))
	copy(ranked, stats)

	switch {
	case totalRevenue > 0:
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
		cumulative := 0.0
		for _, s := range ranked {
			before := cumulative / totalRevenue
			cumulative += s.Revenue
			out[s.ProductID] = tierForShare(before, cumulative/totalRevenue)
		}
	case totalUnits > 0:
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Units > ranked[j].Units })
		cumulative := 0.0
		for _, s := range ranked {
			before := cumulative / float64(totalUnits)
			cumulative += float64(s.Units)
			out[s.ProductID] = tierForShare(before, cumulative/float64(totalUnits))
		}
	default:
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ProductID < ranked[j].ProductID })
		n := float64(len(ranked))
		for i, s := range ranked {
			rank := float64(i)
			switch {
			case rank < abcRankCutoffA*n:
				out[s.ProductID] = domain.ABCCategoryA
			case rank < abcRankCutoffB*n:
				out[s.ProductID] = domain.ABCCategoryB
			default:
				out[s.ProductID] = domain.ABCCategoryC
			}
		}
	}

	return out
}

// tierForShare classifies one item of the cumulative walk. An item is A
// when it starts inside the A band or closes exactly on the 0.80 cutoff
// (the cutoff is inclusive); it is B when it starts at or before the 0.95
// cutoff.
func tierForShare(before, after float64) domain.ABCCategory {
	switch {
	case before < abcRevenueCutoffA || after <= abcRevenueCutoffA:
		return domain.ABCCategoryA
	case before <= abcRevenueCutoffB:
		return domain.ABCCategoryB
	default:
		return domain.ABCCategoryC
	}
}

// CoverageDays is the days of stock remaining at the current demand
// velocity. The second value is false when there is no recent demand.
func CoverageDays(available int, avgDailySales float64) (float64, bool) {
	if avgDailySales <= 0 {
		return 0, false
	}
	return float64(available) / avgDailySales, true
}

// StockStatusFor classifies a stock position. Every (available,
// avgDailySales) pair maps to exactly one status.
func StockStatusFor(available int, avgDailySales float64) domain.StockStatus {
	if available <= 0 {
		return domain.StockStatusOut
	}

	if coverage, ok := CoverageDays(available, avgDailySales); ok {
		switch {
		case coverage <= SafetyStockDays:
			return domain.StockStatusCritical
		case coverage <= LeadTimeDays+SafetyStockDays:
			return domain.StockStatusLow
		default:
			return domain.StockStatusHealthy
		}
	}

	switch {
	case available < noSalesCriticalBelow:
		return domain.StockStatusCritical
	case available < noSalesLowBelow:
		return domain.StockStatusLow
	default:
		return domain.StockStatusHealthy
	}
}

// ReorderPoint is the stock level at which replenishment should trigger.
// Zero when there is no demand signal.
func ReorderPoint(avgDailySales float64) int {
	if avgDailySales <= 0 {
		return 0
	}
	point := int(math.Round(avgDailySales * (LeadTimeDays + SafetyStockDays)))
	if point < 1 {
		return 1
	}
	return point
}

// CountDeadStock counts variants holding stock with no sale inside the
// trailing 90-day lookback.
func CountDeadStock(availableByVariant map[string]int, soldVariantIDs map[string]bool) int {
	count := 0
	for variantID, available := range availableByVariant {
		if available > 0 && !soldVariantIDs[variantID] {
			count++
		}
	}
	return count
}
