// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/lumen/internal/platform/constants"
)

// Cache is the subset of the Redis client used for read-through caching.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedStore serves public reads from Redis and falls back to the wrapped store.
//
// # Scope
//
// Privileged queries always go to the wrapped store. Errors, including
// NOT_FOUND, are never cached. A failing cache is logged and bypassed.
type CachedStore struct {
	next   Store
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStore wraps next with a Redis read-through cache.
func NewCachedStore(next Store, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{next: next, cache: cache, ttl: ttl, logger: logger}
}

// cachedPage is the stored form of a listing result.
type cachedPage struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

// FindOne implements [Store].
func (store *CachedStore) FindOne(ctx context.Context, query Query) (Document, error) {
	if query.Privileged {
		return store.next.FindOne(ctx, query)
	}

	key := DocumentKey(query)
	var document Document
	if store.load(ctx, key, &document) {
		return document, nil
	}

	document, err := store.next.FindOne(ctx, query)
	if err != nil {
		return nil, err
	}

	store.save(ctx, key, document)
	return document, nil
}

// FindPage implements [Store].
func (store *CachedStore) FindPage(ctx context.Context, query Query) ([]Document, int, error) {
	if query.Privileged {
		return store.next.FindPage(ctx, query)
	}

	key := PageKey(query)
	var page cachedPage
	if store.load(ctx, key, &page) {
		return page.Documents, page.Total, nil
	}

	documents, total, err := store.next.FindPage(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	store.save(ctx, key, cachedPage{Total: total, Documents: documents})
	return documents, total, nil
}

// DocumentKey is the cache key of a public single-document query.
func DocumentKey(query Query) string {
	return fmt.Sprintf("%s%s:%s:%s", constants.RedisPrefixDocument, query.Collection, query.Lang, query.Filter.ID)
}

// PageKey is the cache key of a public listing window.
func PageKey(query Query) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", constants.RedisPrefixPage, query.Collection, query.Lang,
		query.Window.Skip, query.Window.Limit)
}

func (store *CachedStore) load(ctx context.Context, key string, target any) bool {
	raw, err := store.cache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		store.logger.WarnContext(ctx, "cache_get_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		store.logger.WarnContext(ctx, "cache_entry_corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (store *CachedStore) save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		store.logger.WarnContext(ctx, "cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := store.cache.Set(ctx, key, raw, store.ttl).Err(); err != nil {
		store.logger.WarnContext(ctx, "cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}
