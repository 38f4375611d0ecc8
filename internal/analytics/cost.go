// backend-go/internal/analytics/cost.go
package analytics

import "github.com/shopsight/backend-go/internal/domain"

// CostResolver resolves per-unit costs for variants. Overrides are primed
// once per request or rebuild and never shared across organizations.
type CostResolver struct {
	overrides map[string]domain.VariantCostOverride
}

// NewCostResolver builds a resolver over the given override rows.
func NewCostResolver(overrides []domain.VariantCostOverride) *CostResolver {
	m := make(map[string]domain.VariantCostOverride, len(overrides))
	for _, o := range overrides {
		m[o.VariantID] = o
	}
	return &CostResolver{overrides: m}
}

// UnitCost resolves the per-unit cost of a variant. Resolution order:
// explicit override, then compare-at price when it undercuts the list price,
// then 60% of the list price. Unknown cost degrades to the heuristic
// silently; the result is never negative.
func (r *CostResolver) UnitCost(v domain.Variant) float64 {
	if o, ok := r.overrides[v.ID]; ok && o.COGSPerUnit != nil {
		return clampNonNegative(*o.COGSPerUnit)
	}
	if v.CompareAtPrice != nil && *v.CompareAtPrice < v.Price {
		return clampNonNegative(*v.CompareAtPrice)
	}
	return clampNonNegative(v.Price * 0.6)
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
