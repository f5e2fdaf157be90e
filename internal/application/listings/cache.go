package listings

import (
	"context"
	"encoding/json"
	"time"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "listing:"

// Cache stores listing snapshots in Redis. All methods tolerate a nil client
// and Redis errors: the cache degrades to a pass-through, never a failure.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Rdb: rdb, TTL: ttl}
}

func cacheKey(listingID uuid.UUID) string {
	return cacheKeyPrefix + listingID.String()
}

// Get returns the cached snapshot, or nil on miss or any cache error.
func (c *Cache) Get(ctx context.Context, listingID uuid.UUID) *domain.Listing {
	if c == nil || c.Rdb == nil {
		return nil
	}
	raw, err := c.Rdb.Get(ctx, cacheKey(listingID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("listing_id", listingID.String()).Msg("Listing cache read failed")
		}
		return nil
	}
	var listing domain.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil
	}
	return &listing
}

func (c *Cache) Set(ctx context.Context, listing *domain.Listing) {
	if c == nil || c.Rdb == nil || listing == nil {
		return
	}
	raw, err := json.Marshal(listing)
	if err != nil {
		return
	}
	if err := c.Rdb.Set(ctx, cacheKey(listing.ID), raw, c.TTL).Err(); err != nil {
		log.Warn().Err(err).Str("listing_id", listing.ID.String()).Msg("Listing cache write failed")
	}
}

// Invalidate drops the cached snapshot after a committed status transition.
func (c *Cache) Invalidate(ctx context.Context, listingID uuid.UUID) {
	if c == nil || c.Rdb == nil {
		return
	}
	if err := c.Rdb.Del(ctx, cacheKey(listingID)).Err(); err != nil {
		log.Warn().Err(err).Str("listing_id", listingID.String()).Msg("Listing cache invalidate failed")
	}
}
