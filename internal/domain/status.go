package domain

// StockStatus classifies a product's stock position against its demand
// velocity.
type StockStatus string

const (
	StockStatusOut      StockStatus = "out"
	StockStatusCritical StockStatus = "critical"
	StockStatusLow      StockStatus = "low"
	StockStatusHealthy  StockStatus = "healthy"
)

// ABCCategory is the Pareto revenue tier of a product.
type ABCCategory string

const (
	ABCCategoryA ABCCategory = "A"
	ABCCategoryB ABCCategory = "B"
	ABCCategoryC ABCCategory = "C"
)

// AlertType identifies the replenishment condition an alert reports.
type AlertType string

const (
	AlertCritical  AlertType = "critical"
	AlertLow       AlertType = "low"
	AlertReorder   AlertType = "reorder"
	AlertOverstock AlertType = "overstock"
)

var alertSeverityRank = map[AlertType]int{
	AlertCritical:  0,
	AlertLow:       1,
	AlertReorder:   2,
	AlertOverstock: 3,
}

// SeverityRank orders alert types from most to least urgent. Unknown types
// sort last.
func (t AlertType) SeverityRank() int {
	if rank, ok := alertSeverityRank[t]; ok {
		return rank
	}
	return len(alertSeverityRank)
}
