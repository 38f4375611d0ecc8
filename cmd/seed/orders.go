// backend-go/cmd/seed/orders.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"
)

// runOrderSeeder loads orders.csv and order_line_items.csv from the data
// directory.
func runOrderSeeder(c *cli.Context) error {
	db := dbFrom(c)
	dataDir := c.String("data-dir")

	loaders := []struct {
		file string
		load func(*cli.Context, *sql.DB, string) (int, error)
	}{
		{"orders.csv", loadOrders},
		{"order_line_items.csv", loadOrderLineItems},
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

func loadOrders(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO orders (id, organization_id, created_at)
		VALUES ($1, $2, $3::timestamptz)
		ON CONFLICT (id) DO NOTHING
	`

	return forEachCSVRecord(path, 3, func(r []string) error {
		_, err := db.ExecContext(c.Context, query, r[0], r[1], r[2])
		return err
	})
}

func loadOrderLineItems(c *cli.Context, db *sql.DB, path string) (int, error) {
	query := `
		INSERT INTO order_line_items (id, order_id, variant_id, product_id, quantity, unit_price, total_discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	return forEachCSVRecord(path, 7, func(r []string) error {
		qty, _ := strconv.Atoi(r[4])
		discount, _ := strconv.ParseFloat(r[6], 64)
		_, err := db.ExecContext(c.Context, query, r[0], r[1], nullIfEmpty(r[2]), nullIfEmpty(r[3]), qty, nullFloat(r[5]), discount)
		return err
	})
}
