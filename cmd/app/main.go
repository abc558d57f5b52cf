package main

import (
	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/helper"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Guest House API
// @version 1.0
// @description Rooms, bookings, payment confirmation and front-desk alerts of a guest house.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
