// backend-go/cmd/seed/schema.go
package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
    id              TEXT PRIMARY KEY,
    organization_id TEXT NOT NULL,
    title           TEXT NOT NULL,
    handle          TEXT NOT NULL DEFAULT '',
    product_type    TEXT NOT NULL DEFAULT '',
    vendor          TEXT NOT NULL DEFAULT '',
    featured_image  TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_products_organization ON products (organization_id);

CREATE TABLE IF NOT EXISTS variants (
    id                 TEXT PRIMARY KEY,
    product_id         TEXT NOT NULL REFERENCES products (id),
    sku                TEXT NOT NULL DEFAULT '',
    title              TEXT NOT NULL DEFAULT '',
    price              DOUBLE PRECISION NOT NULL DEFAULT 0,
    compare_at_price   DOUBLE PRECISION,
    inventory_quantity INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_variants_product ON variants (product_id);

CREATE TABLE IF NOT EXISTS inventory_levels (
    variant_id TEXT PRIMARY KEY REFERENCES variants (id),
    available  INTEGER NOT NULL DEFAULT 0,
    incoming   INTEGER NOT NULL DEFAULT 0,
    committed  INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ,
    synced_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS variant_cost_overrides (
    variant_id        TEXT PRIMARY KEY REFERENCES variants (id),
    cogs_per_unit     DOUBLE PRECISION,
    handling_per_unit DOUBLE PRECISION,
    tax_percent       DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS orders (
    id              TEXT PRIMARY KEY,
    organization_id TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_org_created_at ON orders (organization_id, created_at);

CREATE TABLE IF NOT EXISTS order_line_items (
    id             TEXT PRIMARY KEY,
    order_id       TEXT NOT NULL REFERENCES orders (id),
    variant_id     TEXT,
    product_id     TEXT,
    quantity       INTEGER NOT NULL DEFAULT 0,
    unit_price     DOUBLE PRECISION,
    total_discount DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_order_line_items_order ON order_line_items (order_id);

CREATE TABLE IF NOT EXISTS inventory_snapshots (
    id                   TEXT PRIMARY KEY,
    organization_id      TEXT NOT NULL,
    computed_at          TIMESTAMPTZ NOT NULL,
    analysis_window_days INTEGER NOT NULL,
    payload              JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_snapshots_org ON inventory_snapshots (organization_id, computed_at DESC);

CREATE TABLE IF NOT EXISTS inventory_snapshot_current (
    organization_id TEXT PRIMARY KEY,
    snapshot_id     TEXT NOT NULL REFERENCES inventory_snapshots (id)
);
`

func runSchema(c *cli.Context) error {
	db := dbFrom(c)
	if _, err := db.ExecContext(c.Context, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	fmt.Println("schema created")
	return nil
}
