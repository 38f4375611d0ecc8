package domain

import (
	"math"
	"time"
)

// DateRange is a half-open sales window [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Normalize returns the range with its bounds swapped when they arrive
// reversed. Reversed input is repaired, not rejected.
func (r DateRange) Normalize() DateRange {
	if r.End.Before(r.Start) {
		return DateRange{Start: r.End, End: r.Start}
	}
	return r
}

// Days is the analysis duration in whole days, never below one.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Previous is the immediately preceding window of identical duration.
func (r DateRange) Previous() DateRange {
	d := r.End.Sub(r.Start)
	return DateRange{Start: r.Start.Add(-d), End: r.Start}
}

// LastDays builds the trailing window of n days ending at now.
func LastDays(now time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	return DateRange{Start: now.AddDate(0, 0, -n), End: now}
}

// ProductFilter narrows and orders the snapshot's product rows.
type ProductFilter struct {
	StockLevel string `json:"stock_level"`
	Category   string `json:"category"`
	Search     string `json:"search"`
	SortField  string `json:"sort_field"`
	SortDir    string `json:"sort_dir"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// PagedProducts is one page of product summary rows plus paging metadata.
type PagedProducts struct {
	Products   []ProductSummaryRow `json:"products"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	ComputedAt time.Time           `json:"computed_at"`
}

// RefreshResult reports the outcome of a refresh call. Skipped means the
// current generation was still fresh and force was not set.
type RefreshResult struct {
	Skipped    bool      `json:"skipped"`
	ComputedAt time.Time `json:"computed_at"`
}
