// backend-go/internal/repository/order_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopsight/backend-go/internal/domain"
)

// lineItemBatchSize bounds the fan-out of line item fetches per parent
// order batch.
const lineItemBatchSize = 10

// OrderRepository reads orders and their line items for the sales window.
type OrderRepository interface {
	ListOrdersInWindow(ctx context.Context, organizationID string, window domain.DateRange) ([]domain.Order, error)
	ListLineItems(ctx context.Context, orderIDs []string) ([]domain.OrderLineItem, error)
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

// ListOrdersInWindow range-scans orders on created_at inside [start, end).
func (r *orderRepository) ListOrdersInWindow(ctx context.Context, organizationID string, window domain.DateRange) ([]domain.Order, error) {
	window = window.Normalize()

	query := `
		SELECT id, organization_id, created_at
		FROM orders
		WHERE organization_id = $1
		  AND created_at >= $2
		  AND created_at < $3
		ORDER BY created_at
	`

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, organizationID, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("error listing orders in window: %w", err)
	}

	return orders, nil
}

// ListLineItems fetches line items in batches of at most lineItemBatchSize
// parent orders to bound query fan-out.
func (r *orderRepository) ListLineItems(ctx context.Context, orderIDs []string) ([]domain.OrderLineItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, order_id, variant_id, product_id, quantity, unit_price, total_discount
		FROM order_line_items
		WHERE order_id = ANY($1::text[])
	`

	var items []domain.OrderLineItem
	for start := 0; start < len(orderIDs); start += lineItemBatchSize {
		end := start + lineItemBatchSize
		if end > len(orderIDs) {
			end = len(orderIDs)
		}

		var batch []domain.OrderLineItem
		if err := r.db.SelectContext(ctx, &batch, query, pq.Array(orderIDs[start:end])); err != nil {
			return nil, fmt.Errorf("error listing line items: %w", err)
		}
		items = append(items, batch...)
	}

	return items, nil
}
