package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Warmer periodically refreshes the category cache so reads never see a cold key.
type Warmer struct {
	cache    *Categories
	interval time.Duration
	logger   zerolog.Logger
}

func NewWarmer(cache *Categories, interval time.Duration, logger zerolog.Logger) *Warmer {
	if interval <= 0 {
		interval = defaultCategoryTTL - time.Minute
	}
	return &Warmer{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *Warmer) Run(ctx context.Context) error {
	if w.cache == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Warmer) tick(ctx context.Context) {
	if err := w.cache.Refresh(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category cache refresh failed")
	}
}
