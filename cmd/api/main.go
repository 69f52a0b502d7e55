package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

const bootstrapTimeout = 10 * time.Second

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("cmd", "api").Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load configs/.env")
		}
	}

	// Bounds config loading and app.New; Run gets its own context.
	setupCtx, cancelSetup := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancelSetup()

	cfg, err := config.Load(setupCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	instance, err := app.New(setupCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}
	cancelSetup()

	if err := instance.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}
