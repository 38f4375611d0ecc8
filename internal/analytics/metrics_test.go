package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnoverRate(t *testing.T) {
	// 1000 sold over 30 days against 2000 on hand annualizes to 6.1.
	assert.Equal(t, 6.1, TurnoverRate(1000, 30, 2000))

	assert.Equal(t, 0.0, TurnoverRate(1000, 30, 0))
	assert.Equal(t, 0.0, TurnoverRate(0, 30, 2000))
}

func TestTurnoverRateClampsWindow(t *testing.T) {
	assert.Equal(t, TurnoverRate(100, 1, 500), TurnoverRate(100, 0, 500))
}

func TestChangePercent(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"growth from zero", 500, 0, 100},
		{"flat at zero", 0, 0, 0},
		{"doubling", 200, 100, 100},
		{"halving", 50, 100, -50},
		{"recovery from negative base", 50, -100, 150},
		{"rounded to one decimal", 101, 300, -66.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangePercent(tt.current, tt.previous))
		})
	}
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 0, HealthScore(0, 0))
	assert.Equal(t, 100, HealthScore(4, 4))
	assert.Equal(t, 67, HealthScore(2, 3))
}

func TestStockCoverageDays(t *testing.T) {
	assert.Equal(t, 50, StockCoverageDays(100, 2.0))
	assert.Equal(t, 90, StockCoverageDays(100, 0), "slow movers report the fixed fallback")
	assert.Equal(t, 0, StockCoverageDays(0, 0))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 6.1, Round1(6.083333))
	assert.Equal(t, -2.5, Round1(-2.46))
}

func TestRankPerformers(t *testing.T) {
	inputs := []PerformerInput{
		{ProductID: "p1", Title: "Alpha", UnitsSold: 10, PeriodRevenue: 100, PrevRevenue: 50},
		{ProductID: "p2", Title: "Beta", UnitsSold: 40, PeriodRevenue: 400, PrevRevenue: 400},
		{ProductID: "p3", Title: "Gamma", UnitsSold: 5, PeriodRevenue: 50, PrevRevenue: 200},
	}

	best, worst, trending := RankPerformers(inputs)

	require.Len(t, best, 3)
	assert.Equal(t, "p2", best[0].ProductID)
	assert.Equal(t, "p3", worst[0].ProductID)
	// p1 doubled, p2 flat, p3 collapsed.
	assert.Equal(t, "p1", trending[0].ProductID)
	assert.Equal(t, "p3", trending[2].ProductID)
	assert.Equal(t, 100.0, trending[0].ChangePercent)
}

func TestRankPerformersCapsAtFive(t *testing.T) {
	inputs := make([]PerformerInput, 8)
	for i := range inputs {
		inputs[i] = PerformerInput{ProductID: string(rune('a' + i)), UnitsSold: i}
	}

	best, worst, trending := RankPerformers(inputs)
	assert.Len(t, best, 5)
	assert.Len(t, worst, 5)
	assert.Len(t, trending, 5)
}

func TestRankPerformersTiesKeepInputOrder(t *testing.T) {
	inputs := []PerformerInput{
		{ProductID: "p1", UnitsSold: 10},
		{ProductID: "p2", UnitsSold: 10},
	}

	best, _, _ := RankPerformers(inputs)
	assert.Equal(t, "p1", best[0].ProductID)
	assert.Equal(t, "p2", best[1].ProductID)
}
