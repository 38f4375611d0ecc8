// backend-go/internal/cache/inventory_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopsight/backend-go/internal/config"
	"github.com/shopsight/backend-go/internal/domain"
)

const (
	inventoryKeyPrefix     = "inventory"
	inventoryScanBatchSize = 100
)

// InventoryViewCache is a short-TTL response cache in front of the snapshot
// reads. It only ever holds derived views; the snapshot store stays the
// source of truth.
type InventoryViewCache interface {
	GetOverview(ctx context.Context, organizationID string, window *domain.DateRange) (*domain.OverviewMetrics, bool, error)
	SetOverview(ctx context.Context, organizationID string, window *domain.DateRange, overview *domain.OverviewMetrics) error
	GetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter) (*domain.PagedProducts, bool, error)
	SetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter, page *domain.PagedProducts) error
	InvalidateOrganization(ctx context.Context, organizationID string) error
}

type redisInventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopInventoryCache struct{}

func NewInventoryViewCache(cfg config.CacheConfig) (InventoryViewCache, error) {
	if !cfg.Enabled {
		return &noopInventoryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisInventoryCache{client: client, ttl: ttl}, nil
}

func NewNoopInventoryViewCache() InventoryViewCache {
	return &noopInventoryCache{}
}

func (c *redisInventoryCache) GetOverview(ctx context.Context, organizationID string, window *domain.DateRange) (*domain.OverviewMetrics, bool, error) {
	var overview domain.OverviewMetrics
	ok, err := c.get(ctx, overviewKey(organizationID, window), &overview)
	if !ok || err != nil {
		return nil, false, err
	}
	return &overview, true, nil
}

func (c *redisInventoryCache) SetOverview(ctx context.Context, organizationID string, window *domain.DateRange, overview *domain.OverviewMetrics) error {
	return c.set(ctx, overviewKey(organizationID, window), overview)
}

func (c *redisInventoryCache) GetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter) (*domain.PagedProducts, bool, error) {
	var page domain.PagedProducts
	ok, err := c.get(ctx, productsKey(organizationID, window, filter), &page)
	if !ok || err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *redisInventoryCache) SetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter, page *domain.PagedProducts) error {
	return c.set(ctx, productsKey(organizationID, window, filter), page)
}

func (c *redisInventoryCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	prefix := fmt.Sprintf("%s:%s:", inventoryKeyPrefix, organizationID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, inventoryScanBatchSize)
}

func (c *redisInventoryCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode inventory cache entry: %w", err)
	}
	return true, nil
}

func (c *redisInventoryCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode inventory cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopInventoryCache) GetOverview(ctx context.Context, organizationID string, window *domain.DateRange) (*domain.OverviewMetrics, bool, error) {
	return nil, false, nil
}

func (n *noopInventoryCache) SetOverview(ctx context.Context, organizationID string, window *domain.DateRange, overview *domain.OverviewMetrics) error {
	return nil
}

func (n *noopInventoryCache) GetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter) (*domain.PagedProducts, bool, error) {
	return nil, false, nil
}

func (n *noopInventoryCache) SetProducts(ctx context.Context, organizationID string, window *domain.DateRange, filter domain.ProductFilter, page *domain.PagedProducts) error {
	return nil
}

func (n *noopInventoryCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	return nil
}

func overviewKey(organizationID string, window *domain.DateRange) string {
	return fmt.Sprintf("%s:%s:overview:%s", inventoryKeyPrefix, organizationID, hashParts(windowParts(window)))
}

func productsKey(organizationID string, window *domain.DateRange, filter domain.ProductFilter) string {
	parts := windowParts(window)

	if filter.StockLevel != "" {
		parts = append(parts, "stock_level="+strings.ToLower(strings.TrimSpace(filter.StockLevel)))
	}
	if filter.Category != "" {
		parts = append(parts, "category="+strings.ToLower(strings.TrimSpace(filter.Category)))
	}
	if filter.Search != "" {
		parts = append(parts, "search="+strings.ToLower(strings.TrimSpace(filter.Search)))
	}
	if filter.SortField != "" {
		parts = append(parts, "sort_field="+strings.ToLower(filter.SortField))
	}
	if filter.SortDir != "" {
		parts = append(parts, "sort_dir="+strings.ToLower(filter.SortDir))
	}
	parts = append(parts, "page="+strconv.Itoa(filter.Page), "page_size="+strconv.Itoa(filter.PageSize))

	return fmt.Sprintf("%s:%s:products:%s", inventoryKeyPrefix, organizationID, hashParts(parts))
}

func windowParts(window *domain.DateRange) []string {
	if window == nil {
		return nil
	}
	normalized := window.Normalize()
	return []string{
		"start=" + normalized.Start.UTC().Format(time.RFC3339),
		"end=" + normalized.End.UTC().Format(time.RFC3339),
	}
}

func hashParts(parts []string) string {
	if len(parts) == 0 {
		return "default"
	}
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
