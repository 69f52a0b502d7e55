package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, or status")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	var pg config.Postgres
	if err := env.ParseWithOptions(&pg, env.Options{RequiredIfNoDef: true}); err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.OpenSQL(pg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Msg("connected to database")

	migrator, err := db.NewMigrator(conn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load migrations")
	}

	switch *command {
	case "up":
		results, err := migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Int("applied", len(results)).Msg("migrations applied successfully")

	case "down":
		if _, err := migrator.Down(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migration rolled back successfully")

	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}
		for _, s := range statuses {
			log.Info().
				Int64("version", s.Source.Version).
				Str("path", s.Source.Path).
				Str("state", string(s.State)).
				Msg("migration")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, or status")
	}
}
