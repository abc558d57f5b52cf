package shared

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	"guesthouse/shared/dto"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins the prefix and parts into a single redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its paging and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{
		Params: params,
		Where:  where,
		Args:   args,
	})
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query, falling back to paging only")

		return BuildCacheKey(prefix, strconv.Itoa(params.Page), strconv.Itoa(params.Limit), params.SortBy, params.SortDir)
	}

	return BuildCacheKey(prefix, strconv.FormatUint(xxhash.Sum64(raw), 16))
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
