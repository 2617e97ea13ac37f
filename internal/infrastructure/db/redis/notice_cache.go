package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/examboard/portal-api/internal/core/domain"
)

const (
	publishedKey    = "notices:published"
	defaultCacheTTL = time.Minute
)

// NoticeCache caches the published notice list as a single JSON blob.
// Key: notices:published
type NoticeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNoticeCache creates a NoticeCache wrapping the given Redis client.
// A non-positive ttl falls back to the default.
func NewNoticeCache(client *redis.Client, ttl time.Duration) *NoticeCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &NoticeCache{client: client, ttl: ttl}
}

// GetPublished returns the cached list, or (nil, nil) on a miss.
func (c *NoticeCache) GetPublished(ctx context.Context) ([]domain.Notice, error) {
	raw, err := c.client.Get(ctx, publishedKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("notice cache get: %w", err)
	}

	var notices []domain.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil, fmt.Errorf("notice cache decode: %w", err)
	}
	return notices, nil
}

func (c *NoticeCache) SetPublished(ctx context.Context, notices []domain.Notice) error {
	raw, err := json.Marshal(notices)
	if err != nil {
		return fmt.Errorf("notice cache encode: %w", err)
	}
	if err := c.client.Set(ctx, publishedKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("notice cache set: %w", err)
	}
	return nil
}

func (c *NoticeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, publishedKey).Err(); err != nil {
		return fmt.Errorf("notice cache invalidate: %w", err)
	}
	return nil
}
