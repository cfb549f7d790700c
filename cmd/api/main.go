package main

import (
	"context"
	"os"
	"time"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/interfaces/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create failed")
	}

	// Verify collaborator connections before accepting traffic.
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal().Err(err).Msg("record store handle failed")
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatal().Err(err).Msg("record store connection failed")
		}
		log.Info().Msg("Record store (Postgres) connected")
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Msg("Redis connected")
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
