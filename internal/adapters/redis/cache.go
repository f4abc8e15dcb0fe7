package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/logger"
	"github.com/rafaelleal24/stock/internal/core/port"
	"github.com/rafaelleal24/stock/internal/core/service"
)

const (
	stockCachePrefix       = "stock-cache"
	idempotencyCachePrefix = "idempotency:stock"
)

type Cache[T any] struct {
	client *Client
	prefix string
}

func NewCache[T any](client *Client, prefix string) port.CachePort[T] {
	return &Cache[T]{client: client, prefix: prefix}
}

// NewStockCache holds stock records read through by sku.
func NewStockCache(client *Client) port.CachePort[domain.Stock] {
	return NewCache[domain.Stock](client, stockCachePrefix)
}

// NewIdempotencyCache holds the claims and results of create requests.
func NewIdempotencyCache(client *Client) port.CachePort[service.IdempotencyEntry[domain.Stock]] {
	return NewCache[service.IdempotencyEntry[domain.Stock]](client, idempotencyCachePrefix)
}

func (c *Cache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// Get returns (nil, nil) on a miss. An entry that no longer decodes is
// dropped and reported as a miss.
func (c *Cache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.Get(ctx, c.key(id))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		logger.Warn(ctx, "cache: dropping undecodable entry", map[string]any{
			"key":   c.key(id),
			"error": err.Error(),
		})
		_ = c.client.Del(ctx, c.key(id))
		return nil, nil
	}
	return &value, nil
}

func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(id), string(data), ttl)
}

func (c *Cache[T]) SetNX(ctx context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, c.key(id), string(data), ttl)
}

func (c *Cache[T]) Del(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id))
}
