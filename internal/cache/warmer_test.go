package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmerRefreshesUntilCancelled(t *testing.T) {
	rdb := newFakeRedis()
	store := seededStore()
	c := NewCategories(rdb, store, time.Minute, zerolog.Nop())
	w := NewWarmer(c, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		rdb.mu.Lock()
		defer rdb.mu.Unlock()
		_, ok := rdb.data[categoriesKey]
		return ok
	}, time.Second, 5*time.Millisecond)

	// New categories show up after the next tick without waiting for the TTL.
	store.AddCategory(3, "Geography")
	require.Eventually(t, func() bool {
		got, ok := c.get(context.Background())
		return ok && len(got) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRefreshPropagatesStoreErrors(t *testing.T) {
	store := seededStore()
	store.Fail["AllCategories"] = errors.New("db down")
	c := NewCategories(newFakeRedis(), store, time.Minute, zerolog.Nop())

	assert.Error(t, c.Refresh(context.Background()))
}

func TestWarmerWithoutCache(t *testing.T) {
	assert.NoError(t, NewWarmer(nil, time.Second, zerolog.Nop()).Run(context.Background()))
}
