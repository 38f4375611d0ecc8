package analytics

import (
	"testing"

	"github.com/shopsight/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSignalRulePriority(t *testing.T) {
	tests := []struct {
		name   string
		signal VariantSignal
		want   domain.AlertType
		days   *float64
	}{
		{
			// Zero stock wins even when the variant sells briskly.
			name:   "out of stock",
			signal: VariantSignal{VariantID: "v1", Available: 0, AvgDailySales: 5},
			want:   domain.AlertCritical,
			days:   floatPtr(0),
		},
		{
			name:   "coverage within safety days",
			signal: VariantSignal{VariantID: "v1", Available: 4, AvgDailySales: 2},
			want:   domain.AlertCritical,
			days:   floatPtr(2),
		},
		{
			name:   "coverage below lead time",
			signal: VariantSignal{VariantID: "v1", Available: 16, AvgDailySales: 2},
			want:   domain.AlertLow,
			days:   floatPtr(8),
		},
		{
			name:   "at reorder point with healthy coverage",
			signal: VariantSignal{VariantID: "v1", Available: 10, AvgDailySales: 0.95},
			want:   domain.AlertReorder,
		},
		{
			name:   "overstocked seller",
			signal: VariantSignal{VariantID: "v1", Available: 300, AvgDailySales: 2},
			want:   domain.AlertOverstock,
		},
		{
			name:   "idle stock pile",
			signal: VariantSignal{VariantID: "v1", Available: 60, AvgDailySales: 0},
			want:   domain.AlertOverstock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, ok := evaluateSignal(tt.signal)
			require.True(t, ok)
			assert.Equal(t, tt.want, alert.Type)
			if tt.days == nil {
				assert.Nil(t, alert.DaysUntilStockout)
			} else {
				require.NotNil(t, alert.DaysUntilStockout)
				assert.Equal(t, *tt.days, *alert.DaysUntilStockout)
			}
		})
	}
}

func TestEvaluateSignalQuietVariants(t *testing.T) {
	// Healthy coverage above the reorder point, below the overstock band.
	_, ok := evaluateSignal(VariantSignal{Available: 30, AvgDailySales: 2})
	assert.False(t, ok)

	// Small idle stock is not worth an alert.
	_, ok = evaluateSignal(VariantSignal{Available: 10, AvgDailySales: 0})
	assert.False(t, ok)
}

func TestBuildAlertsOnePerVariant(t *testing.T) {
	signals := []VariantSignal{
		{VariantID: "v1", Available: 0, AvgDailySales: 5},
		{VariantID: "v2", Available: 30, AvgDailySales: 2},
		{VariantID: "v3", Available: 16, AvgDailySales: 2},
	}

	alerts := BuildAlerts(signals)
	require.Len(t, alerts, 2)

	seen := map[string]int{}
	for _, a := range alerts {
		seen[a.VariantID]++
	}
	for variantID, count := range seen {
		assert.Equal(t, 1, count, "variant %s", variantID)
	}
}

func TestSortAlertsSeverityThenStockout(t *testing.T) {
	alerts := []domain.Alert{
		{VariantID: "v1", Type: domain.AlertOverstock},
		{VariantID: "v2", Type: domain.AlertCritical, DaysUntilStockout: floatPtr(2)},
		{VariantID: "v3", Type: domain.AlertLow, DaysUntilStockout: floatPtr(8)},
		{VariantID: "v4", Type: domain.AlertCritical, DaysUntilStockout: floatPtr(0)},
		{VariantID: "v5", Type: domain.AlertReorder},
	}

	SortAlerts(alerts)

	got := make([]string, len(alerts))
	for i, a := range alerts {
		got[i] = a.VariantID
	}
	assert.Equal(t, []string{"v4", "v2", "v3", "v5", "v1"}, got)

	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, alerts[i].Type.SeverityRank(), alerts[i-1].Type.SeverityRank())
	}
}

func TestSortAlertsNilStockoutSortsLast(t *testing.T) {
	alerts := []domain.Alert{
		{VariantID: "v1", Type: domain.AlertCritical},
		{VariantID: "v2", Type: domain.AlertCritical, DaysUntilStockout: floatPtr(1)},
	}

	SortAlerts(alerts)
	assert.Equal(t, "v2", alerts[0].VariantID)
}
