// backend-go/internal/repository/catalog_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopsight/backend-go/internal/domain"
)

// CatalogRepository reads the organization-scoped product catalog and its
// stock/cost side tables.
type CatalogRepository interface {
	ListProducts(ctx context.Context, organizationID string) ([]domain.Product, error)
	ListVariants(ctx context.Context, organizationID string) ([]domain.Variant, error)
	ListInventoryLevels(ctx context.Context, organizationID string) ([]domain.InventoryLevel, error)
	ListCostOverrides(ctx context.Context, organizationID string) ([]domain.VariantCostOverride, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListProducts(ctx context.Context, organizationID string) ([]domain.Product, error) {
	query := `
		SELECT id, organization_id, title, handle, product_type, vendor,
		       featured_image, created_at, updated_at
		FROM products
		WHERE organization_id = $1
		ORDER BY id
	`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, organizationID); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) ListVariants(ctx context.Context, organizationID string) ([]domain.Variant, error) {
	query := `
		SELECT v.id, v.product_id, v.sku, v.title, v.price, v.compare_at_price,
		       v.inventory_quantity
		FROM variants v
		JOIN products p ON p.id = v.product_id
		WHERE p.organization_id = $1
		ORDER BY v.id
	`

	var variants []domain.Variant
	if err := r.db.SelectContext(ctx, &variants, query, organizationID); err != nil {
		return nil, fmt.Errorf("error listing variants: %w", err)
	}

	return variants, nil
}

func (r *catalogRepository) ListInventoryLevels(ctx context.Context, organizationID string) ([]domain.InventoryLevel, error) {
	query := `
		SELECT il.variant_id, il.available, il.incoming, il.committed,
		       il.updated_at, il.synced_at
		FROM inventory_levels il
		JOIN variants v ON v.id = il.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE p.organization_id = $1
	`

	var levels []domain.InventoryLevel
	if err := r.db.SelectContext(ctx, &levels, query, organizationID); err != nil {
		return nil, fmt.Errorf("error listing inventory levels: %w", err)
	}

	return levels, nil
}

func (r *catalogRepository) ListCostOverrides(ctx context.Context, organizationID string) ([]domain.VariantCostOverride, error) {
	query := `
		SELECT co.variant_id, co.cogs_per_unit, co.handling_per_unit, co.tax_percent
		FROM variant_cost_overrides co
		JOIN variants v ON v.id = co.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE p.organization_id = $1
	`

	var overrides []domain.VariantCostOverride
	if err := r.db.SelectContext(ctx, &overrides, query, organizationID); err != nil {
		return nil, fmt.Errorf("error listing cost overrides: %w", err)
	}

	return overrides, nil
}
