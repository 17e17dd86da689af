package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"asset_booking/booking"
)

// AvailabilityCache keeps recently computed block lists per (item, window)
// in Redis. Advisory only: every mutating operation invalidates the item's
// keys and the write path never reads from here.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func blockKey(itemID string, from, to time.Time) string {
	return fmt.Sprintf("avail:blocks:%s:%d:%d", itemID, from.Unix(), to.Unix())
}
func itemSetKey(itemID string) string { return fmt.Sprintf("avail:keys:%s", itemID) }

func (c *AvailabilityCache) Get(ctx context.Context, itemID string, from, to time.Time) ([]booking.Block, bool) {
	b, err := c.rdb.Get(ctx, blockKey(itemID, from, to)).Bytes()
	if err != nil {
		return nil, false
	}
	var blocks []booking.Block
	if err := json.Unmarshal(b, &blocks); err != nil {
		return nil, false
	}
	return blocks, true
}

func (c *AvailabilityCache) Put(ctx context.Context, itemID string, from, to time.Time, blocks []booking.Block) {
	b, err := json.Marshal(blocks)
	if err != nil {
		return
	}
	k := blockKey(itemID, from, to)
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, k, b, c.ttl)
	pipe.SAdd(ctx, itemSetKey(itemID), k)
	pipe.Expire(ctx, itemSetKey(itemID), c.ttl)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops every cached window for the item. Called after each
// successful reservation/loan mutation; errors are ignored because the TTL
// bounds staleness anyway.
func (c *AvailabilityCache) Invalidate(ctx context.Context, itemID string) {
	ids, err := c.rdb.SMembers(ctx, itemSetKey(itemID)).Result()
	if err != nil && err != redis.Nil {
		return
	}
	pipe := c.rdb.TxPipeline()
	for _, k := range ids {
		pipe.Del(ctx, k)
	}
	pipe.Del(ctx, itemSetKey(itemID))
	_, _ = pipe.Exec(ctx)
}
