package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Catalog  Catalog
	Quiz     Quiz
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds cache + pub/sub configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Catalog tunes listing behavior and catalog side channels.
type Catalog struct {
	PageSize         int                    `env:"CATALOG_PAGE_SIZE" envDefault:"10"`
	Pagination       catalog.PaginationMode `env:"CATALOG_PAGINATION" envDefault:"offset"`
	EmptyAsNotFound  bool                   `env:"CATALOG_EMPTY_AS_NOT_FOUND" envDefault:"true"`
	CategoryCacheTTL time.Duration          `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	CacheRefresh     time.Duration          `env:"CATEGORY_CACHE_REFRESH" envDefault:"4m"`
	EventsChannel    string                 `env:"CATALOG_EVENTS_CHANNEL" envDefault:"catalog:events"`
}

// EngineOptions converts the catalog settings into engine options.
func (c Catalog) EngineOptions() catalog.Options {
	empty := catalog.EmptyIsNotFound
	if !c.EmptyAsNotFound {
		empty = catalog.EmptyIsSuccess
	}
	return catalog.Options{
		PageSize:     c.PageSize,
		Pagination:   c.Pagination,
		EmptyResults: empty,
	}
}

// Quiz configures next-question selection.
type Quiz struct {
	Selection quiz.Policy `env:"QUIZ_SELECTION" envDefault:"first"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,true"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Catalog.PageSize <= 0 {
		return nil, fmt.Errorf("parse config: CATALOG_PAGE_SIZE must be positive, got %d", cfg.Catalog.PageSize)
	}
	return cfg, nil
}
