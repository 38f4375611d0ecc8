// backend-go/internal/service/query.go
package service

import (
	"sort"
	"strings"

	"github.com/shopsight/backend-go/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 250
)

// applyProductQuery filters, searches, sorts and paginates snapshot rows.
// Everything happens in memory against one generation; rows from different
// generations are never mixed.
func applyProductQuery(rows []domain.ProductSummaryRow, filter domain.ProductFilter) ([]domain.ProductSummaryRow, int) {
	filtered := filterRows(rows, filter)
	sortRows(filtered, filter.SortField, filter.SortDir)

	total := len(filtered)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	start := (page - 1) * size
	if start >= total {
		return []domain.ProductSummaryRow{}, total
	}
	end := start + size
	if end > total {
		end = total
	}

	return filtered[start:end], total
}

func filterRows(rows []domain.ProductSummaryRow, filter domain.ProductFilter) []domain.ProductSummaryRow {
	stockLevel := strings.ToLower(strings.TrimSpace(filter.StockLevel))
	category := strings.ToLower(strings.TrimSpace(filter.Category))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.ProductSummaryRow, 0, len(rows))
	for _, row := range rows {
		if stockLevel != "" && string(row.StockStatus) != stockLevel {
			continue
		}
		if category != "" && strings.ToLower(row.ProductType) != category {
			continue
		}
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesSearch(row domain.ProductSummaryRow, search string) bool {
	if strings.Contains(strings.ToLower(row.Title), search) ||
		strings.Contains(strings.ToLower(row.Vendor), search) {
		return true
	}
	for _, v := range row.Variants {
		if strings.Contains(strings.ToLower(v.SKU), search) {
			return true
		}
	}
	return false
}

func sortRows(rows []domain.ProductSummaryRow, field, dir string) {
	desc := strings.ToLower(dir) == "desc"

	var less func(a, b domain.ProductSummaryRow) bool
	switch strings.ToLower(field) {
	case "stock", "available":
		less = func(a, b domain.ProductSummaryRow) bool { return a.Available < b.Available }
	case "units_sold":
		less = func(a, b domain.ProductSummaryRow) bool { return a.UnitsSold < b.UnitsSold }
	case "revenue", "period_revenue":
		less = func(a, b domain.ProductSummaryRow) bool { return a.PeriodRevenue < b.PeriodRevenue }
	case "price":
		less = func(a, b domain.ProductSummaryRow) bool { return a.Price < b.Price }
	case "margin":
		less = func(a, b domain.ProductSummaryRow) bool { return a.Margin < b.Margin }
	case "abc", "abc_category":
		less = func(a, b domain.ProductSummaryRow) bool { return a.ABCCategory < b.ABCCategory }
	case "title", "":
		less = func(a, b domain.ProductSummaryRow) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		less = func(a, b domain.ProductSummaryRow) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
