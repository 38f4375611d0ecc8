// backend-go/cmd/seed/catalog.go
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"
)

// runCatalogSeeder loads products.csv, variants.csv, inventory_levels.csv
// and cost_overrides.csv from the data directory. Files that do not exist
// are skipped.
func runCatalogSeeder(c *cli.Context) error {
	db := dbFrom(c)
	dataDir := c.String("data-dir")

	loaders := []struct {
		file string
		load func(*cli.Context, *sql.DB, string) (int, error)
	}{
		{"products.csv", loadProducts},
		{"variants.csv", loadVariants},
		{"inventory_levels.csv", loadInventoryLevels},
		{"cost_overrides.csv", loadCostOverrides},
	}

	for _, l := range loaders {
		path := filepath.Join(dataDir, l.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("file not found, skipping: %s", path)
			continue
		}

		count, err := l.load(c, db, path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", l.file, err)
		}
		log.Printf("loaded %d rows from %s", count, l.file)
	}

	return nil
}

func forEachCSVRecord(path string, minFields int, fn func(record []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Skip header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(record) < minFields {
			continue
		}
		if err := fn(record); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func loadProducts(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO products (id, organization_id, title, handle, product_type, vendor, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			handle = EXCLUDED.handle,
			product_type = EXCLUDED.product_type,
			vendor = EXCLUDED.vendor,
			featured_image = EXCLUDED.featured_image,
			updated_at = now()
	`

	return forEachCSVRecord(path, 7, func(r []string) error {
		_, err := db.ExecContext(c.Context, query, r[0], r[1], r[2], r[3], r[4], r[5], r[6])
		return err
	})
}

func loadVariants(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO variants (id, product_id, sku, title, price, compare_at_price, inventory_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			sku = EXCLUDED.sku,
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			compare_at_price = EXCLUDED.compare_at_price,
			inventory_quantity = EXCLUDED.inventory_quantity
	`

	return forEachCSVRecord(path, 7, func(r []string) error {
		price, _ := strconv.ParseFloat(r[4], 64)
		qty, _ := strconv.Atoi(r[6])
		_, err := db.ExecContext(c.Context, query, r[0], r[1], r[2], r[3], price, nullFloat(r[5]), qty)
		return err
	})
}

func loadInventoryLevels(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO inventory_levels (variant_id, available, incoming, committed, updated_at, synced_at)
		VALUES ($1, $2, $3, $4, $5::timestamptz, $6::timestamptz)
		ON CONFLICT (variant_id) DO UPDATE SET
			available = EXCLUDED.available,
			incoming = EXCLUDED.incoming,
			committed = EXCLUDED.committed,
			updated_at = EXCLUDED.updated_at,
			synced_at = EXCLUDED.synced_at
	`

	return forEachCSVRecord(path, 6, func(r []string) error {
		available, _ := strconv.Atoi(r[1])
		incoming, _ := strconv.Atoi(r[2])
		committed, _ := strconv.Atoi(r[3])
		_, err := db.ExecContext(c.Context, query, r[0], available, incoming, committed, nullIfEmpty(r[4]), nullIfEmpty(r[5]))
		return err
	})
}

func loadCostOverrides(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO variant_cost_overrides (variant_id, cogs_per_unit, handling_per_unit, tax_percent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (variant_id) DO UPDATE SET
			cogs_per_unit = EXCLUDED.cogs_per_unit,
			handling_per_unit = EXCLUDED.handling_per_unit,
			tax_percent = EXCLUDED.tax_percent
	`

	return forEachCSVRecord(path, 4, func(r []string) error {
		_, err := db.ExecContext(c.Context, query, r[0], nullFloat(r[1]), nullFloat(r[2]), nullFloat(r[3]))
		return err
	})
}

func nullFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
