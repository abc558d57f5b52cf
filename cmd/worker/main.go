package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	defer func() {
		if err := worker.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	log.Info().
		Strs("topics", []string{cfg.Kafka.Topics.BookingPlaced, cfg.Kafka.Topics.PaymentConfirmed}).
		Str("group", cfg.Kafka.ConsumerGroup).
		Msg("Starting event worker.")

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Event worker stopped")

		return
	}

	log.Info().Msg("Event worker shut down.")
}
