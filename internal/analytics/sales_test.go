package analytics

import (
	"testing"
	"time"

	"github.com/shopsight/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testVariants() []domain.Variant {
	return []domain.Variant{
		{ID: "v1", ProductID: "p1", SKU: "SKU-1", Price: 10},
		{ID: "v2", ProductID: "p1", SKU: "SKU-2", Price: 20},
		{ID: "v3", ProductID: "p2", SKU: "SKU-3", Price: 5},
	}
}

func TestAggregateSalesRollsUpVariantAndProduct(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		{ID: "o1", OrganizationID: "org", CreatedAt: day1},
		{ID: "o2", OrganizationID: "org", CreatedAt: day2},
	}
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v1"), Quantity: 2, UnitPrice: floatPtr(10)},
		{ID: "li2", OrderID: "o2", VariantID: strPtr("v1"), Quantity: 1, UnitPrice: floatPtr(10), TotalDiscount: 2},
		{ID: "li3", OrderID: "o2", VariantID: strPtr("v2"), Quantity: 3, UnitPrice: floatPtr(20)},
	}

	result := AggregateSales(orders, items, testVariants(), NewCostResolver(nil))

	v1 := result.ByVariant["v1"]
	assert.Equal(t, 3, v1.Units)
	assert.Equal(t, 28.0, v1.Revenue) // 20 + (10 - 2)
	require.NotNil(t, v1.LastSoldAt)
	assert.True(t, v1.LastSoldAt.Equal(day2))

	p1 := result.ByProduct["p1"]
	assert.Equal(t, 6, p1.Units)
	assert.Equal(t, 88.0, p1.Revenue)
}

func TestAggregateSalesSkipsNonPositiveQuantities(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{{ID: "o1", CreatedAt: now}}
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v1"), Quantity: 0},
		{ID: "li2", OrderID: "o1", VariantID: strPtr("v1"), Quantity: -3},
	}

	result := AggregateSales(orders, items, testVariants(), NewCostResolver(nil))
	assert.Empty(t, result.ByVariant)
	assert.Empty(t, result.ByProduct)
}

func TestAggregateSalesUnitPriceFallsBackToListPrice(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{{ID: "o1", CreatedAt: now}}
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v2"), Quantity: 2},
	}

	result := AggregateSales(orders, items, testVariants(), NewCostResolver(nil))
	assert.Equal(t, 40.0, result.ByVariant["v2"].Revenue)
}

func TestAggregateSalesRevenueNeverNegative(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{{ID: "o1", CreatedAt: now}}
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v1"), Quantity: 1, UnitPrice: floatPtr(10), TotalDiscount: 50},
	}

	result := AggregateSales(orders, items, testVariants(), NewCostResolver(nil))
	assert.Equal(t, 0.0, result.ByVariant["v1"].Revenue)
}

func TestAggregateSalesResolvesProductViaVariant(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{{ID: "o1", CreatedAt: now}}
	items := []domain.OrderLineItem{
		// No product id on the line: resolved through the variant map.
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v3"), Quantity: 4, UnitPrice: floatPtr(5)},
		// No variant id: attributed to the product only.
		{ID: "li2", OrderID: "o1", ProductID: strPtr("p2"), Quantity: 1, UnitPrice: floatPtr(5)},
		// Neither id: skipped.
		{ID: "li3", OrderID: "o1", Quantity: 1, UnitPrice: floatPtr(5)},
	}

	result := AggregateSales(orders, items, testVariants(), NewCostResolver(nil))
	assert.Equal(t, 4, result.ByVariant["v3"].Units)
	assert.Equal(t, 5, result.ByProduct["p2"].Units)
	assert.Len(t, result.ByVariant, 1)
}

func TestAggregateSalesSkipsItemsWithUnknownOrder(t *testing.T) {
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "missing", VariantID: strPtr("v1"), Quantity: 1},
	}

	result := AggregateSales(nil, items, testVariants(), NewCostResolver(nil))
	assert.Empty(t, result.ByVariant)
}

func TestAggregateSalesAccumulatesCOGS(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{{ID: "o1", CreatedAt: now}}
	items := []domain.OrderLineItem{
		{ID: "li1", OrderID: "o1", VariantID: strPtr("v1"), Quantity: 2, UnitPrice: floatPtr(10)},
	}

	costs := NewCostResolver([]domain.VariantCostOverride{
		{VariantID: "v1", COGSPerUnit: floatPtr(4)},
	})

	result := AggregateSales(orders, items, testVariants(), costs)
	assert.Equal(t, 8.0, result.ByVariant["v1"].COGS)
}
