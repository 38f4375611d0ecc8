// backend-go/internal/domain/models.go
package domain

import "time"

// Product is a sellable item owned by one organization.
type Product struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	Title          string    `json:"title" db:"title"`
	Handle         string    `json:"handle" db:"handle"`
	ProductType    string    `json:"product_type" db:"product_type"`
	Vendor         string    `json:"vendor" db:"vendor"`
	FeaturedImage  string    `json:"featured_image" db:"featured_image"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Variant is a purchasable variation of a product. InventoryQuantity is the
// fallback stock signal when no inventory level row exists for the variant.
type Variant struct {
	ID                string   `json:"id" db:"id"`
	ProductID         string   `json:"product_id" db:"product_id"`
	SKU               string   `json:"sku" db:"sku"`
	Title             string   `json:"title" db:"title"`
	Price             float64  `json:"price" db:"price"`
	CompareAtPrice    *float64 `json:"compare_at_price" db:"compare_at_price"`
	InventoryQuantity int      `json:"inventory_quantity" db:"inventory_quantity"`
}

// InventoryLevel is the synced stock position for a variant. Zero or one row
// per variant in the steady state.
type InventoryLevel struct {
	VariantID string     `json:"variant_id" db:"variant_id"`
	Available int        `json:"available" db:"available"`
	Incoming  int        `json:"incoming" db:"incoming"`
	Committed int        `json:"committed" db:"committed"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	SyncedAt  *time.Time `json:"synced_at" db:"synced_at"`
}

// FreshAt resolves the level's freshness timestamp: updated_at when present,
// otherwise synced_at. The second value is false when neither is set.
func (l InventoryLevel) FreshAt() (time.Time, bool) {
	if l.UpdatedAt != nil {
		return *l.UpdatedAt, true
	}
	if l.SyncedAt != nil {
		return *l.SyncedAt, true
	}
	return time.Time{}, false
}

// Order carries the source-of-truth timestamp used for all sales windowing.
type Order struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// OrderLineItem is one sold line of an order. VariantID and ProductID are
// nullable in the source feed; ProductID must be resolved via the variant
// when absent. UnitPrice falls back to the variant list price when nil.
type OrderLineItem struct {
	ID            string   `json:"id" db:"id"`
	OrderID       string   `json:"order_id" db:"order_id"`
	VariantID     *string  `json:"variant_id" db:"variant_id"`
	ProductID     *string  `json:"product_id" db:"product_id"`
	Quantity      int      `json:"quantity" db:"quantity"`
	UnitPrice     *float64 `json:"unit_price" db:"unit_price"`
	TotalDiscount float64  `json:"total_discount" db:"total_discount"`
}

// VariantCostOverride is an operator-entered unit cost for a variant,
// at most one per variant.
type VariantCostOverride struct {
	VariantID       string   `json:"variant_id" db:"variant_id"`
	COGSPerUnit     *float64 `json:"cogs_per_unit" db:"cogs_per_unit"`
	HandlingPerUnit *float64 `json:"handling_per_unit" db:"handling_per_unit"`
	TaxPercent      *float64 `json:"tax_percent" db:"tax_percent"`
}
