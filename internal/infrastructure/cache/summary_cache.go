// Package cache provides short-lived caches for read-heavy dashboard
// endpoints.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// SummaryCache stores rendered dashboard summaries per business. A
// summary is invalidated whenever the underlying payroll batch
// changes.
type SummaryCache interface {
	Get(ctx context.Context, businessID uuid.UUID, out any) error
	Set(ctx context.Context, businessID uuid.UUID, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, businessID uuid.UUID) error
}

const summaryKeyPrefix = "payroll:summary:"

// RedisSummaryCache shares summaries across instances.
type RedisSummaryCache struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, keyPrefix: summaryKeyPrefix}
}

func (c *RedisSummaryCache) key(businessID uuid.UUID) string {
	return c.keyPrefix + businessID.String()
}

func (c *RedisSummaryCache) Get(ctx context.Context, businessID uuid.UUID, out any) error {
	data, err := c.client.Get(ctx, c.key(businessID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("get cached summary: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode cached summary: %w", err)
	}
	return nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, businessID uuid.UUID, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key(businessID), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache summary: %w", err)
	}
	return nil
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, businessID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(businessID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached summary: %w", err)
	}
	return nil
}

var _ SummaryCache = (*RedisSummaryCache)(nil)

// InMemorySummaryCache is a single-instance SummaryCache for
// development and tests.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewInMemorySummaryCache() *InMemorySummaryCache {
	return &InMemorySummaryCache{entries: make(map[uuid.UUID]memoryEntry)}
}

func (c *InMemorySummaryCache) Get(ctx context.Context, businessID uuid.UUID, out any) error {
	c.mu.RLock()
	entry, ok := c.entries[businessID]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, out)
}

func (c *InMemorySummaryCache) Set(ctx context.Context, businessID uuid.UUID, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[businessID] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *InMemorySummaryCache) Invalidate(ctx context.Context, businessID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, businessID)
	return nil
}

var _ SummaryCache = (*InMemorySummaryCache)(nil)
