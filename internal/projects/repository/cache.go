package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix = "crimson:doc:" // Current rendered document: crimson:doc:{owner_id}:{public_id}
	docTTL       = 24 * time.Hour // Cached documents expire after a day without edits
)

// DocumentCache keeps the current rendered document of a project in
// Redis so preview reads skip Postgres. It is strictly a cache: a miss
// is not an error and every project mutation invalidates the entry.
type DocumentCache struct {
	client *redis.Client
}

// NewDocumentCache creates a new DocumentCache.
func NewDocumentCache(client *redis.Client) *DocumentCache {
	return &DocumentCache{client: client}
}

// Get returns the cached document and whether it was present.
func (c *DocumentCache) Get(ctx context.Context, ownerID, publicID string) (string, bool, error) {
	html, err := c.client.Get(ctx, c.docKey(ownerID, publicID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return html, true, nil
}

// Put stores the current document with a refreshed TTL.
func (c *DocumentCache) Put(ctx context.Context, ownerID, publicID, html string) error {
	if err := c.client.Set(ctx, c.docKey(ownerID, publicID), html, docTTL).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Invalidate drops the cached document after a mutation.
func (c *DocumentCache) Invalidate(ctx context.Context, ownerID, publicID string) error {
	if err := c.client.Del(ctx, c.docKey(ownerID, publicID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *DocumentCache) docKey(ownerID, publicID string) string {
	return fmt.Sprintf("%s%s:%s", docKeyPrefix, ownerID, publicID)
}
