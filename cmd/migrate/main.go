package main

import (
	"os"

	"guesthouse/config"
	"guesthouse/helper"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop"

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) != 2 {
		log.Fatal().Msg(usage)
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("migration failed")
	}
}
