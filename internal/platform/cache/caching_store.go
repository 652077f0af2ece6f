// Package cache provides caching decorators for store interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"prep_tracker/internal/shared/scoped"
)

const defaultTTL = 5 * time.Minute

// CachingStore decorates a scoped.Store with a per-owner Redis cache of List results.
// Every successful write for an owner drops that owner's entry. Redis failures are
// logged and never fail the call; a nil client disables caching.
type CachingStore[M any, C any, P any] struct {
	inner     scoped.Store[M, C, P]
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ scoped.Store[struct{}, struct{}, struct{}] = (*CachingStore[struct{}, struct{}, struct{}])(nil)

// NewCachingStore wraps inner. If ttl is 0 it defaults to 5 minutes.
func NewCachingStore[M any, C any, P any](rdb *redis.Client, ttl time.Duration, inner scoped.Store[M, C, P], namespace string) *CachingStore[M, C, P] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachingStore[M, C, P]{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// List serves the owner's records from the cache, loading and storing them on a miss.
func (c *CachingStore[M, C, P]) List(ctx context.Context, ownerID uint) ([]M, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, ownerID)
	}

	key := c.cacheKey(ownerID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []M
		if err := json.Unmarshal(b, &out); err == nil && out != nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	out, err := c.inner.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// Create stores the record and invalidates the owner's list.
func (c *CachingStore[M, C, P]) Create(ctx context.Context, ownerID uint, payload C) (M, error) {
	out, err := c.inner.Create(ctx, ownerID, payload)
	if err != nil {
		return out, err
	}
	c.invalidate(ctx, ownerID)
	return out, nil
}

// Update applies the patch and invalidates the owner's list.
func (c *CachingStore[M, C, P]) Update(ctx context.Context, id, ownerID uint, patch P) (M, error) {
	out, err := c.inner.Update(ctx, id, ownerID, patch)
	if err != nil {
		return out, err
	}
	c.invalidate(ctx, ownerID)
	return out, nil
}

// Delete removes the record and invalidates the owner's list.
func (c *CachingStore[M, C, P]) Delete(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

func (c *CachingStore[M, C, P]) invalidate(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	key := c.cacheKey(ownerID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", key, "error", err)
	}
}

func (c *CachingStore[M, C, P]) cacheKey(ownerID uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, ownerID)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
