// backend-go/internal/analytics/alerts.go
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopsight/backend-go/internal/domain"
)

// overstockCoverageFactor: coverage at or beyond this multiple of the
// replenishment cycle counts as overstock.
const overstockCoverageFactor = 3

// idleOverstockThreshold: units on hand that count as overstock when the
// variant has no sales velocity at all.
const idleOverstockThreshold = 50

// VariantSignal is the per-variant input to alert generation. Alerts are
// variant-granular even though the product listing classifies per product.
type VariantSignal struct {
	VariantID     string
	ProductID     string
	SKU           string
	Title         string
	Available     int
	AvgDailySales float64
}

// BuildAlerts evaluates each variant against the replenishment rules in
// fixed priority order, emitting at most one alert per variant, then sorts
// by severity with faster-approaching stockouts first.
func BuildAlerts(signals []VariantSignal) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(signals))
	for _, sig := range signals {
		if alert, ok := evaluateSignal(sig); ok {
			alerts = append(alerts, alert)
		}
	}
	SortAlerts(alerts)
	return alerts
}

func evaluateSignal(sig VariantSignal) (domain.Alert, bool) {
	alert := domain.Alert{
		VariantID:    sig.VariantID,
		ProductID:    sig.ProductID,
		SKU:          sig.SKU,
		Title:        sig.Title,
		Available:    sig.Available,
		ReorderPoint: ReorderPoint(sig.AvgDailySales),
	}

	if sig.Available <= 0 {
		alert.Type = domain.AlertCritical
		alert.Message = "Out of stock - immediate reorder required"
		alert.DaysUntilStockout = float64Ptr(0)
		return alert, true
	}

	coverage, selling := CoverageDays(sig.Available, sig.AvgDailySales)
	if selling {
		switch {
		case coverage <= SafetyStockDays:
			alert.Type = domain.AlertCritical
			alert.Message = fmt.Sprintf("Stock runs out in about %.0f days", coverage)
			alert.DaysUntilStockout = float64Ptr(coverage)
			return alert, true
		case coverage <= LeadTimeDays+SafetyStockDays:
			alert.Type = domain.AlertLow
			alert.Message = fmt.Sprintf("Stock covers only %.0f days, below lead time", coverage)
			alert.DaysUntilStockout = float64Ptr(coverage)
			return alert, true
		case sig.Available <= alert.ReorderPoint:
			alert.Type = domain.AlertReorder
			alert.Message = "Stock at or below reorder point"
			return alert, true
		case coverage >= overstockCoverageFactor*(LeadTimeDays+SafetyStockDays):
			alert.Type = domain.AlertOverstock
			alert.Message = fmt.Sprintf("Overstocked - %.0f days of cover", coverage)
			return alert, true
		}
		return domain.Alert{}, false
	}

	if sig.Available >= idleOverstockThreshold {
		alert.Type = domain.AlertOverstock
		alert.Message = "Idle stock with no recent sales"
		return alert, true
	}

	return domain.Alert{}, false
}

// SortAlerts orders alerts by severity rank, tie-broken by ascending days
// until stockout; alerts without a stockout projection sort last within
// their severity.
func SortAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Type.SeverityRank(), alerts[j].Type.SeverityRank()
		if ri != rj {
			return ri < rj
		}
		return stockoutDays(alerts[i]) < stockoutDays(alerts[j])
	})
}

func stockoutDays(a domain.Alert) float64 {
	if a.DaysUntilStockout == nil {
		return math.Inf(1)
	}
	return *a.DaysUntilStockout
}

func float64Ptr(v float64) *float64 { return &v }
