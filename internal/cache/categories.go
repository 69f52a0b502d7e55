// Package cache keeps hot catalog reads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

const (
	defaultCategoryTTL = 5 * time.Minute
	categoriesKey      = "catalog:categories"
)

// Categories is a read-through Redis cache in front of a catalog.CategoryStore.
// Redis failures fall back to the underlying store.
type Categories struct {
	client redis.Cmdable
	next   catalog.CategoryStore
	ttl    time.Duration
	logger zerolog.Logger
}

var _ catalog.CategoryStore = (*Categories)(nil)

func NewCategories(client redis.Cmdable, next catalog.CategoryStore, ttl time.Duration, logger zerolog.Logger) *Categories {
	if ttl <= 0 {
		ttl = defaultCategoryTTL
	}
	return &Categories{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.With().Str("component", "category_cache").Logger(),
	}
}

// AllCategories serves the cached list, loading and storing it on a miss.
func (c *Categories) AllCategories(ctx context.Context) ([]catalog.Category, error) {
	if cached, ok := c.get(ctx); ok {
		return cached, nil
	}

	categories, err := c.next.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, categories)
	return categories, nil
}

// CategoryByID answers from the cached list when present, otherwise from the store.
func (c *Categories) CategoryByID(ctx context.Context, id int64) (*catalog.Category, error) {
	if cached, ok := c.get(ctx); ok {
		for _, category := range cached {
			if category.ID == id {
				found := category
				return &found, nil
			}
		}
	}
	return c.next.CategoryByID(ctx, id)
}

// Refresh reloads the list from the store and overwrites the cached copy.
func (c *Categories) Refresh(ctx context.Context) error {
	categories, err := c.next.AllCategories(ctx)
	if err != nil {
		return err
	}
	c.set(ctx, categories)
	return nil
}

// Invalidate drops the cached list.
func (c *Categories) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoriesKey).Err()
}

func (c *Categories) get(ctx context.Context) ([]catalog.Category, bool) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("category cache read failed")
		}
		return nil, false
	}

	var categories []catalog.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		c.logger.Warn().Err(err).Msg("category cache entry corrupt")
		return nil, false
	}
	return categories, true
}

func (c *Categories) set(ctx context.Context, categories []catalog.Category) {
	// An empty list is not cached so newly seeded categories show up immediately.
	if len(categories) == 0 {
		return
	}
	data, err := json.Marshal(categories)
	if err != nil {
		c.logger.Warn().Err(err).Msg("category cache encode failed")
		return
	}
	if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("category cache write failed")
	}
}
