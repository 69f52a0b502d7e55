package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/catalog/catalogtest"
)

// fakeRedis implements the handful of commands the cache issues.
type fakeRedis struct {
	redis.Cmdable

	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
	gets int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func seededStore() *catalogtest.MemoryStore {
	store := catalogtest.NewMemoryStore()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	return store
}

func TestAllCategoriesReadThrough(t *testing.T) {
	rdb := newFakeRedis()
	store := seededStore()
	c := NewCategories(rdb, store, 0, zerolog.Nop())
	ctx := context.Background()

	first, err := c.AllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Contains(t, rdb.data, categoriesKey)
	assert.Equal(t, defaultCategoryTTL, rdb.ttls[categoriesKey])

	// A store failure is invisible while the cache is warm.
	store.Fail["AllCategories"] = errors.New("db down")
	second, err := c.AllCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCategoryByIDUsesCachedList(t *testing.T) {
	rdb := newFakeRedis()
	store := seededStore()
	c := NewCategories(rdb, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := c.AllCategories(ctx)
	require.NoError(t, err)

	store.Fail["CategoryByID"] = errors.New("should not be called")
	got, err := c.CategoryByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Art", got.Type)

	// Unknown ids fall through to the store.
	_, err = c.CategoryByID(ctx, 9)
	assert.Error(t, err)
}

func TestCategoryByIDColdCache(t *testing.T) {
	c := NewCategories(newFakeRedis(), seededStore(), time.Minute, zerolog.Nop())

	got, err := c.CategoryByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Science", got.Type)

	_, err = c.CategoryByID(context.Background(), 7)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRedisFailureFallsBackToStore(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	c := NewCategories(rdb, seededStore(), time.Minute, zerolog.Nop())

	got, err := c.AllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEmptyListIsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	c := NewCategories(rdb, catalogtest.NewMemoryStore(), time.Minute, zerolog.Nop())

	got, err := c.AllCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotContains(t, rdb.data, categoriesKey)
}

func TestCorruptEntryIsIgnored(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data[categoriesKey] = "{not json"
	c := NewCategories(rdb, seededStore(), time.Minute, zerolog.Nop())

	got, err := c.AllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestInvalidate(t *testing.T) {
	rdb := newFakeRedis()
	c := NewCategories(rdb, seededStore(), time.Minute, zerolog.Nop())

	_, err := c.AllCategories(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(context.Background()))
	assert.NotContains(t, rdb.data, categoriesKey)
}
