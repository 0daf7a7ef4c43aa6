// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/pkg/pagination"
)

// fakeCache is an in-process stand-in for the Redis client.
type fakeCache struct {
	entries map[string]string
	ttls    map[string]time.Duration
	fail    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (cache *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if cache.fail != nil {
		return redis.NewStringResult("", cache.fail)
	}
	value, ok := cache.entries[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (cache *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if cache.fail != nil {
		return redis.NewStatusResult("", cache.fail)
	}
	cache.entries[key] = string(value.([]byte))
	cache.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

// countingStore records how often the wrapped store is reached.
type countingStore struct {
	content.Store
	ones  int
	pages int
}

func (store *countingStore) FindOne(ctx context.Context, query content.Query) (content.Document, error) {
	store.ones++
	return store.Store.FindOne(ctx, query)
}

func (store *countingStore) FindPage(ctx context.Context, query content.Query) ([]content.Document, int, error) {
	store.pages++
	return store.Store.FindPage(ctx, query)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestCachedStore_PublicReads verifies the read-through path for public queries.
*/
func TestCachedStore_PublicReads(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: seedStore(t)}
	cache := newFakeCache()
	store := content.NewCachedStore(backend, cache, time.Minute, discardLogger())

	single := content.BuildSingle(content.Article, locale.English, false, articleID(1))

	// 1. Miss then hit
	first, err := store.FindOne(ctx, single)
	require.NoError(t, err)
	second, err := store.FindOne(ctx, single)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.ones)
	assert.Equal(t, first["title"], second["title"])
	assert.Equal(t, time.Minute, cache.ttls[content.DocumentKey(single)])

	// 2. Pages are cached per window
	listing := content.BuildListing(content.Article, locale.English, false, pagination.Request{Page: 1, PerPage: 5})
	_, total, err := store.FindPage(ctx, listing)
	require.NoError(t, err)
	documents, cachedTotal, err := store.FindPage(ctx, listing)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.pages)
	assert.Equal(t, 23, total)
	assert.Equal(t, total, cachedTotal)
	assert.Len(t, documents, 5)

	// 3. Not found is never cached
	missing := content.BuildSingle(content.Article, locale.English, false, articleID(2))
	_, err = store.FindOne(ctx, missing)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.NotContains(t, cache.entries, content.DocumentKey(missing))
}

/*
TestCachedStore_Bypass verifies that privileged queries and cache failures reach the store.
*/
func TestCachedStore_Bypass(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: seedStore(t)}
	cache := newFakeCache()
	store := content.NewCachedStore(backend, cache, time.Minute, discardLogger())

	// 1. Privileged
	privileged := content.BuildSingle(content.Article, locale.English, true, articleID(2))
	for i := 0; i < 2; i++ {
		_, err := store.FindOne(ctx, privileged)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, backend.ones)
	assert.Empty(t, cache.entries)

	// 2. Broken cache
	cache.fail = errors.New("connection refused")
	document, err := store.FindOne(ctx, content.BuildSingle(content.Article, locale.Polish, false, articleID(3)))
	require.NoError(t, err)
	assert.Equal(t, "Tytuł 3", document["title"])
	assert.Equal(t, 3, backend.ones)
}

/*
TestCacheKeys verifies that keys separate language, id and window.
*/
func TestCacheKeys(t *testing.T) {
	english := content.BuildSingle(content.Article, locale.English, false, articleID(1))
	polish := content.BuildSingle(content.Article, locale.Polish, false, articleID(1))

	assert.Equal(t, "content:doc:content.article:en:"+articleID(1), content.DocumentKey(english))
	assert.NotEqual(t, content.DocumentKey(english), content.DocumentKey(polish))

	page := content.BuildListing(content.Glossary, locale.English, false, pagination.Request{Page: 2, PerPage: 10})
	assert.Equal(t, "content:page:content.glossary:en:10:10", content.PageKey(page))
}
