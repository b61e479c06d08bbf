// Package cache provides a Redis read-through cache for card views.
//
// The cache is never authoritative: every failure path degrades silently to
// the store, and mutations invalidate before readers can observe stale
// authorization-relevant state for long. TTL bounds staleness when an
// invalidation is lost.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"devdeck/internal/card"
	platformredis "devdeck/internal/platform/redis"
	id "devdeck/pkg/domain"
)

// DefaultTTL bounds how long a cached view can outlive a lost invalidation.
const DefaultTTL = 5 * time.Minute

// CardCache implements card.ViewCache on Redis.
type CardCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *CardCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CardCache{client: client, ttl: ttl, logger: logger}
}

func key(cardID id.CardID) string {
	return "devdeck:card:" + cardID.String()
}

func (c *CardCache) Get(ctx context.Context, cardID id.CardID) (card.View, bool) {
	raw, err := c.client.Get(ctx, key(cardID)).Bytes()
	if err != nil {
		return card.View{}, false
	}
	var view card.View
	if err := json.Unmarshal(raw, &view); err != nil {
		// A corrupt entry is dropped so the next read repopulates it.
		c.client.Del(ctx, key(cardID))
		return card.View{}, false
	}
	return view, true
}

func (c *CardCache) Set(ctx context.Context, view card.View) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode card view for cache",
			"card_id", view.ID,
			"error", err,
		)
		return
	}
	if err := c.client.Set(ctx, key(view.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to cache card view",
			"card_id", view.ID,
			"error", err,
		)
	}
}

func (c *CardCache) Invalidate(ctx context.Context, cardID id.CardID) {
	if err := c.client.Del(ctx, key(cardID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate cached card view",
			"card_id", cardID,
			"error", err,
		)
	}
}
