package analytics

import (
	"testing"

	"github.com/shopsight/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCostResolverResolutionOrder(t *testing.T) {
	tests := []struct {
		name     string
		variant  domain.Variant
		override *domain.VariantCostOverride
		want     float64
	}{
		{
			name:     "override wins over everything",
			variant:  domain.Variant{ID: "v1", Price: 100, CompareAtPrice: floatPtr(40)},
			override: &domain.VariantCostOverride{VariantID: "v1", COGSPerUnit: floatPtr(25)},
			want:     25,
		},
		{
			name:    "compare-at price used when below list price",
			variant: domain.Variant{ID: "v1", Price: 100, CompareAtPrice: floatPtr(70)},
			want:    70,
		},
		{
			name:    "compare-at price ignored when at or above list price",
			variant: domain.Variant{ID: "v1", Price: 100, CompareAtPrice: floatPtr(120)},
			want:    60,
		},
		{
			name:    "heuristic of 60 percent when nothing else known",
			variant: domain.Variant{ID: "v1", Price: 50},
			want:    30,
		},
		{
			name:     "override without cogs falls through to heuristic",
			variant:  domain.Variant{ID: "v1", Price: 50},
			override: &domain.VariantCostOverride{VariantID: "v1", HandlingPerUnit: floatPtr(2)},
			want:     30,
		},
		{
			name:     "negative override clamps to zero",
			variant:  domain.Variant{ID: "v1", Price: 50},
			override: &domain.VariantCostOverride{VariantID: "v1", COGSPerUnit: floatPtr(-5)},
			want:     0,
		},
		{
			name:    "negative price clamps to zero",
			variant: domain.Variant{ID: "v1", Price: -10},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var overrides []domain.VariantCostOverride
			if tt.override != nil {
				overrides = append(overrides, *tt.override)
			}
			resolver := NewCostResolver(overrides)
			assert.Equal(t, tt.want, resolver.UnitCost(tt.variant))
		})
	}
}

func TestCostResolverOverrideForOtherVariantIgnored(t *testing.T) {
	resolver := NewCostResolver([]domain.VariantCostOverride{
		{VariantID: "other", COGSPerUnit: floatPtr(1)},
	})

	got := resolver.UnitCost(domain.Variant{ID: "v1", Price: 10})
	assert.Equal(t, 6.0, got)
}
