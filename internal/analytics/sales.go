// backend-go/internal/analytics/sales.go
package analytics

import (
	"time"

	"github.com/shopsight/backend-go/internal/domain"
)

// SalesTotals is the rolled-up sales activity for one variant or product
// over an analysis window.
type SalesTotals struct {
	Units      int
	Revenue    float64
	COGS       float64
	LastSoldAt *time.Time
}

// SalesResult holds the two rollup maps produced by one aggregation pass.
// Product totals are the sum of their variants' totals.
type SalesResult struct {
	ByVariant map[string]SalesTotals
	ByProduct map[string]SalesTotals
}

// AggregateSales joins order line items to variants and rolls up units,
// revenue, COGS and last-sold timestamps. Orders carry the source-of-truth
// timestamps; line items whose parent order is unknown are skipped, as are
// non-positive quantities. Inventory levels and cost overrides are not
// touched here, so the pass is cheap enough to rerun per request.
func AggregateSales(orders []domain.Order, items []domain.OrderLineItem, variants []domain.Variant, costs *CostResolver) SalesResult {
	orderedAt := make(map[string]time.Time, len(orders))
	for _, o := range orders {
		orderedAt[o.ID] = o.CreatedAt
	}

	variantByID := make(map[string]domain.Variant, len(variants))
	productOf := make(map[string]string, len(variants))
	for _, v := range variants {
		variantByID[v.ID] = v
		productOf[v.ID] = v.ProductID
	}

	result := SalesResult{
		ByVariant: make(map[string]SalesTotals),
		ByProduct: make(map[string]SalesTotals),
	}

	for _, item := range items {
		soldAt, ok := orderedAt[item.OrderID]
		if !ok || item.Quantity <= 0 {
			continue
		}

		var (
			variant    domain.Variant
			hasVariant bool
			productID  string
		)
		if item.VariantID != nil {
			variant, hasVariant = variantByID[*item.VariantID]
		}
		switch {
		case item.ProductID != nil:
			productID = *item.ProductID
		case hasVariant:
			productID = productOf[variant.ID]
		}
		if !hasVariant && productID == "" {
			continue
		}

		unitPrice := 0.0
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		} else if hasVariant {
			unitPrice = variant.Price
		}

		revenue := unitPrice*float64(item.Quantity) - item.TotalDiscount
		if revenue < 0 {
			revenue = 0
		}

		cogs := 0.0
		if hasVariant {
			cogs = float64(item.Quantity) * costs.UnitCost(variant)
		}

		if hasVariant {
			accumulate(result.ByVariant, variant.ID, item.Quantity, revenue, cogs, soldAt)
		}
		if productID != "" {
			accumulate(result.ByProduct, productID, item.Quantity, revenue, cogs, soldAt)
		}
	}

	return result
}

func accumulate(m map[string]SalesTotals, key string, units int, revenue, cogs float64, soldAt time.Time) {
	totals := m[key]
	totals.Units += units
	totals.Revenue += revenue
	totals.COGS += cogs
	if totals.LastSoldAt == nil || soldAt.After(*totals.LastSoldAt) {
		t := soldAt
		totals.LastSoldAt = &t
	}
	m[key] = totals
}
