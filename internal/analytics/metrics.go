// backend-go/internal/analytics/metrics.go
package analytics

import (
	"math"
	"sort"

	"github.com/shopsight/backend-go/internal/domain"
)

// slowMoverCoverageDays is reported when stock exists but nothing sold in
// the window: assume slow-moving, not risk-free.
const slowMoverCoverageDays = 90

// topPerformerCount caps each of the best/worst/trending rankings.
const topPerformerCount = 5

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// HealthScore is the percentage of SKUs classified healthy, 0 with no SKUs.
func HealthScore(healthyCount, totalSKUs int) int {
	if totalSKUs == 0 {
		return 0
	}
	return int(math.Round(100 * float64(healthyCount) / float64(totalSKUs)))
}

// TurnoverRate annualizes window COGS against on-hand COGS valuation.
func TurnoverRate(cogsSold float64, analysisDays int, totalCOGS float64) float64 {
	if totalCOGS <= 0 {
		return 0
	}
	if analysisDays < 1 {
		analysisDays = 1
	}
	return Round1((cogsSold * (365.0 / float64(analysisDays))) / totalCOGS)
}

// StockCoverageDays estimates days of stock at the window's sales velocity.
func StockCoverageDays(totalUnitsInStock int, avgDailyUnitsSold float64) int {
	if avgDailyUnitsSold > 0 {
		return int(math.Round(float64(totalUnitsInStock) / avgDailyUnitsSold))
	}
	if totalUnitsInStock > 0 {
		return slowMoverCoverageDays
	}
	return 0
}

// ChangePercent is the period-over-period delta. A previous value of zero
// reports 100 for any growth and 0 otherwise.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Round1(100 * (current - previous) / math.Abs(previous))
}

// PerformerInput pairs a product's current and previous window sales for
// ranking.
type PerformerInput struct {
	ProductID     string
	Title         string
	UnitsSold     int
	PeriodRevenue float64
	PrevRevenue   float64
}

// RankPerformers produces the best/worst/trending rankings. Best and worst
// rank by absolute units, trending by revenue change versus the previous
// window; ties keep input order.
func RankPerformers(inputs []PerformerInput) (best, worst, trending []domain.TopPerformer) {
	performers := make([]domain.TopPerformer, len(inputs))
	for i, in := range inputs {
		performers[i] = domain.TopPerformer{
			ProductID:     in.ProductID,
			Title:         in.Title,
			UnitsSold:     in.UnitsSold,
			PeriodRevenue: in.PeriodRevenue,
			ChangePercent: ChangePercent(in.PeriodRevenue, in.PrevRevenue),
		}
	}

	byUnitsDesc := make([]domain.TopPerformer, len(performers))
	copy(byUnitsDesc, performers)
	sort.SliceStable(byUnitsDesc, func(i, j int) bool { return byUnitsDesc[i].UnitsSold > byUnitsDesc[j].UnitsSold })

	byUnitsAsc := make([]domain.TopPerformer, len(performers))
	copy(byUnitsAsc, performers)
	sort.SliceStable(byUnitsAsc, func(i, j int) bool { return byUnitsAsc[i].UnitsSold < byUnitsAsc[j].UnitsSold })

	byChangeDesc := make([]domain.TopPerformer, len(performers))
	copy(byChangeDesc, performers)
	sort.SliceStable(byChangeDesc, func(i, j int) bool { return byChangeDesc[i].ChangePercent > byChangeDesc[j].ChangePercent })

	return takePerformers(byUnitsDesc), takePerformers(byUnitsAsc), takePerformers(byChangeDesc)
}

func takePerformers(performers []domain.TopPerformer) []domain.TopPerformer {
	if len(performers) > topPerformerCount {
		performers = performers[:topPerformerCount]
	}
	out := make([]domain.TopPerformer, len(performers))
	copy(out, performers)
	return out
}
