package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"guesthouse/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatchSize        = 100
)

// Nil is wrapped by Get when the key does not exist.
const Nil = redis.Nil

// RedisCache stores JSON encoded values. Strings are stored raw so they stay
// readable from redis-cli.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	// Incr bumps a counter and returns its new value. The first bump starts a
	// window of duration seconds after which the counter disappears.
	Incr(ctx context.Context, key string, duration int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear deletes every key matching pattern, scanning in batches so a large
// keyspace never blocks redis.
func (cache *redisCache) Clear(ctx context.Context, pattern string) error {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()

	iter := cache.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
	batch := make([]string, 0, clearBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		err := cache.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]

		return err //nolint:wrapcheck
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == clearBatchSize {
			if err := flush(); err != nil {
				scope.TraceError(err)

				return fmt.Errorf("failed to clear %s: %w", pattern, err)
			}
		}
	}

	if err := errors.Join(iter.Err(), flush()); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to clear cache")

		return fmt.Errorf("failed to clear %s: %w", pattern, err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) error {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()

	if err := cache.client.Del(ctx, key).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get loads key into value. A missing key returns an error wrapping Nil and
// is not traced as a failure.
func (cache *redisCache) Get(ctx context.Context, key string, value any) error {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := cache.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		scope.SetAttribute("cache.hit", false)

		return fmt.Errorf("cache miss %s: %w", key, err)
	}

	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	scope.SetAttribute("cache.hit", true)

	if str, ok := value.(*string); ok {
		*str = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) error {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()

	var payload []byte

	if str, ok := value.(string); ok {
		payload = []byte(str)
	} else {
		encoded, err := json.Marshal(value)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}

		payload = encoded
	}

	if err := cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache saved")

	return nil
}

func (cache *redisCache) Incr(ctx context.Context, key string, duration int) (int64, error) {
	ctx, scope := cache.scope(ctx, "Incr", key)
	defer scope.End()

	pipe := cache.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Duration(duration)*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	return incr.Val(), nil
}
