package redis

import (
	"context"
	"time"

	"guesthouse/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New dials the primary redis holding roles, tokens and cached listings.
// The service cannot authorize requests without it, so a failed ping is fatal.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary
	timeout := time.Duration(primary.TimeoutSeconds) * time.Second

	client := goRedis.NewClient(&goRedis.Options{
		Addr:         primary.Addr(),
		Password:     primary.Password,
		DB:           primary.DB,
		PoolSize:     primary.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", primary.Addr()).Msg("failed to connect to redis")
	}

	log.Info().Str("addr", primary.Addr()).Int("db", primary.DB).Msg("connected to redis")

	return client
}
