package exchangerate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Cache stores rate strings keyed by currency pair. Get reports whether the
// key was present; an error means the cache itself failed.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache backed by a redis client.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache returns a redis backed Cache.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get returns the cached value for key, reporting a miss on redis.Nil.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// CachedProvider decorates a Provider with a read-through rate cache.
// Rates change every minute or so; a short TTL keeps lookups cheap without
// serving stale prices. Cache failures fall back to the underlying provider
// and never surface to the caller.
type CachedProvider struct {
	next  Provider
	cache Cache
	ttl   time.Duration
}

// NewCachedProvider returns a Provider caching rates with the given TTL.
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// Rate returns the cached rate for the pair, looking it up through the
// underlying provider on a miss.
func (p *CachedProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)
	key := "rate:" + from + ":" + to

	cached, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		l.Warn().Err(err).Str("key", key).Msg("rate cache read failed")
	} else if ok {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}

		l.Warn().Err(parseErr).Str("key", key).Msg("dropping unparsable cached rate")
	}

	rate, err := p.next.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if err := p.cache.Set(ctx, key, rate.String(), p.ttl); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("rate cache write failed")
	}

	return rate, nil
}
