package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing service is reachable; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the handlers and backing services the router serves.
type Deps struct {
	Catalog     *catalog.HTTPHandlers
	Quiz        *quiz.HTTPHandler
	CatalogFeed http.Handler
	Metrics     *metrics.Metrics

	Postgres Pinger
	Redis    redis.Cmdable
}

// NewHTTPServer wires the trivia routes behind the shared middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Deps) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg, logger, deps),
	}
}

// NewRouter builds the mux and wraps it in recovery, request id, access log and CORS.
func NewRouter(cfg *config.App, logger zerolog.Logger, deps Deps) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, deps.Metrics.Instrument(pattern, h))
	}

	handle("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	handle("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps.Postgres, deps.Redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Catalog endpoints; the trailing-slash forms are kept for older clients.
	if deps.Catalog != nil {
		for _, p := range []string{"/categories", "/categories/{$}"} {
			handle(p, deps.Catalog.Categories)
		}
		for _, p := range []string{"/questions", "/questions/{$}"} {
			handle(p, deps.Catalog.Questions)
		}
		handle("/questions/{id}", deps.Catalog.DeleteQuestion)
		for _, p := range []string{"/categories/{id}/questions", "/categories/{id}/questions/{$}"} {
			handle(p, deps.Catalog.CategoryQuestions)
		}
	}

	if deps.Quiz != nil {
		for _, p := range []string{"/quizzes", "/quizzes/{$}"} {
			handle(p, deps.Quiz.NextQuestion)
		}
	}

	if deps.CatalogFeed != nil {
		mux.Handle("/ws/catalog", deps.CatalogFeed)
	} else {
		mux.HandleFunc("/ws/catalog", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondError(w, http.StatusNotImplemented)
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	return Chain(
		Recovery(logger),
		RequestID(logger),
		AccessLog(),
		CORS(cfg.CORS),
	)(mux)
}

func pingDependencies(ctx context.Context, pool Pinger, rdb redis.Cmdable) error {
	if pool != nil {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

