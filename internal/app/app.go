package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/trivia-api/internal/cache"
	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/events"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	hub         *ws.Hub
	broadcaster *events.Broadcaster
	cacheWarmer *cache.Warmer
}

// New bootstraps logger, Postgres, Redis, the catalog services and the HTTP server.
// ctx bounds setup work only and is not retained; Run takes its own context.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// Storage: Postgres repositories with the category list cached in Redis.
	repos := repository.NewStore(pool)
	categoryCache := cache.NewCategories(redisClient, repos.CategoryStore, cfg.Catalog.CategoryCacheTTL, logger)
	if err := categoryCache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
	store := catalog.Composite{
		QuestionStore: repos.QuestionStore,
		CategoryStore: categoryCache,
	}

	publisher := events.NewRedisPublisher(redisClient, cfg.Catalog.EventsChannel)
	engine := catalog.NewEngine(store, publisher, cfg.Catalog.EngineOptions(), logger)
	selector := quiz.NewSelector(store, quiz.Options{Policy: cfg.Quiz.Selection}, logger)

	m := metrics.New(prometheus.DefaultRegisterer)
	hub := ws.NewHub(logger)
	broadcaster := events.NewBroadcaster(redisClient, hub, cfg.Catalog.EventsChannel, logger)

	apiServer := server.NewHTTPServer(cfg, logger, server.Deps{
		Catalog:     catalog.NewHTTPHandlers(engine, logger),
		Quiz:        quiz.NewHTTPHandler(selector, m, logger),
		CatalogFeed: events.NewWSHandler(hub, nil, logger),
		Metrics:     m,
		Postgres:    pool,
		Redis:       redisClient,
	})

	logger.Info().
		Str("pagination", cfg.Catalog.Pagination.String()).
		Int("page_size", engine.Options().PageSize).
		Str("quiz_selection", selector.Policy().String()).
		Msg("catalog services initialized")

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		hub:         hub,
		broadcaster: broadcaster,
		cacheWarmer: cache.NewWarmer(categoryCache, cfg.Catalog.CacheRefresh, logger),
	}, nil
}

// Run starts the HTTP server and background workers and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	bgCtx, cancelWorkers := context.WithCancel(ctx)
	workers := a.startBackgroundWorkers(bgCtx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	cancelWorkers()
	if err := workers.Wait(); err != nil {
		a.logger.Warn().Err(err).Msg("background worker stopped with error")
	}
	a.hub.CloseAll()

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) *errgroup.Group {
	var g errgroup.Group

	if a.broadcaster != nil {
		g.Go(func() error {
			if err := a.broadcaster.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("catalog broadcaster: %w", err)
			}
			return nil
		})
	}

	if a.cacheWarmer != nil {
		g.Go(func() error {
			if err := a.cacheWarmer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("category cache warmer: %w", err)
			}
			return nil
		})
	}

	return &g
}
