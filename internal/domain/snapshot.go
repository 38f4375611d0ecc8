package domain

import "time"

// TopPerformer is one entry in the overview's best/worst/trending ranking.
type TopPerformer struct {
	ProductID     string  `json:"product_id"`
	Title         string  `json:"title"`
	UnitsSold     int     `json:"units_sold"`
	PeriodRevenue float64 `json:"period_revenue"`
	ChangePercent float64 `json:"change_percent"`
}

// OverviewMetrics are the organization-wide totals shown on the dashboard.
// Valuation fields are on-hand (stock x price/cost), not sales-based.
type OverviewMetrics struct {
	TotalValue        float64 `json:"total_value"`
	TotalCOGS         float64 `json:"total_cogs"`
	TotalSKUs         int     `json:"total_skus"`
	HealthScore       int     `json:"health_score"`
	TurnoverRate      float64 `json:"turnover_rate"`
	StockCoverageDays int     `json:"stock_coverage_days"`
	DeadStock         int     `json:"dead_stock"`

	UnitsSold     int     `json:"units_sold"`
	PeriodRevenue float64 `json:"period_revenue"`
	PeriodCOGS    float64 `json:"period_cogs"`

	RevenueChange float64 `json:"revenue_change"`
	UnitsChange   float64 `json:"units_change"`

	BestPerformers  []TopPerformer `json:"best_performers"`
	WorstPerformers []TopPerformer `json:"worst_performers"`
	Trending        []TopPerformer `json:"trending"`
}

// VariantSummaryRow is a denormalized variant sub-row of a product summary.
// StockFreshAt is the resolved freshness of the variant's inventory level,
// nil when no level row carries a timestamp.
type VariantSummaryRow struct {
	VariantID     string     `json:"variant_id"`
	SKU           string     `json:"sku"`
	Title         string     `json:"title"`
	Price         float64    `json:"price"`
	Cost          float64    `json:"cost"`
	Available     int        `json:"available"`
	UnitsSold     int        `json:"units_sold"`
	PeriodRevenue float64    `json:"period_revenue"`
	LastSoldAt    *time.Time `json:"last_sold_at"`
	StockFreshAt  *time.Time `json:"stock_fresh_at"`
}

// ProductSummaryRow is one denormalized product line of a snapshot. The
// structural fields are fixed at build time; UnitsSold and PeriodRevenue are
// recomputed per request when a caller supplies an explicit date range.
type ProductSummaryRow struct {
	ProductID     string              `json:"product_id"`
	Title         string              `json:"title"`
	Handle        string              `json:"handle"`
	ProductType   string              `json:"product_type"`
	Vendor        string              `json:"vendor"`
	FeaturedImage string              `json:"featured_image"`
	Stock         int                 `json:"stock"`
	Available     int                 `json:"available"`
	ReorderPoint  int                 `json:"reorder_point"`
	StockStatus   StockStatus         `json:"stock_status"`
	Price         float64             `json:"price"`
	Cost          float64             `json:"cost"`
	Margin        float64             `json:"margin"`
	ABCCategory   ABCCategory         `json:"abc_category"`
	UnitsSold     int                 `json:"units_sold"`
	PeriodRevenue float64             `json:"period_revenue"`
	LastSoldAt    *time.Time          `json:"last_sold_at"`
	Variants      []VariantSummaryRow `json:"variants"`
}

// Alert is a variant-granular replenishment signal.
type Alert struct {
	VariantID         string    `json:"variant_id"`
	ProductID         string    `json:"product_id"`
	SKU               string    `json:"sku"`
	Title             string    `json:"title"`
	Type              AlertType `json:"type"`
	Message           string    `json:"message"`
	Available         int       `json:"available"`
	ReorderPoint      int       `json:"reorder_point"`
	DaysUntilStockout *float64  `json:"days_until_stockout"`
}

// InventorySnapshot is one immutable generation of the derived inventory
// view for an organization. Generations are superseded, never mutated;
// reads always select the latest ComputedAt.
type InventorySnapshot struct {
	ID                 string              `json:"id"`
	OrganizationID     string              `json:"organization_id"`
	ComputedAt         time.Time           `json:"computed_at"`
	AnalysisWindowDays int                 `json:"analysis_window_days"`
	Overview           OverviewMetrics     `json:"overview"`
	Products           []ProductSummaryRow `json:"products"`
	Alerts             []Alert             `json:"alerts"`
}

// IsStale reports whether the snapshot has outlived ttl at the given time.
func (s *InventorySnapshot) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.ComputedAt) > ttl
}
