package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/config"
	"github.com/Chekke24/challenger-premios-backend/internal/database"
	"github.com/Chekke24/challenger-premios-backend/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}

	if *down {
		err = database.MigrateDown(db)
	} else {
		err = database.Migrate(db)
	}
	if closeErr := database.Close(db); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close database")
	}
	if err != nil {
		log.Fatal().Err(err).Bool("down", *down).Msg("migration failed")
	}
}
