package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/timescript"
	"github.com/aretw0/timescript/internal/config"
	"github.com/aretw0/timescript/pkg/adapters/memory"
	"github.com/aretw0/timescript/pkg/adapters/redis"
	"github.com/aretw0/timescript/pkg/observability"
	"github.com/aretw0/timescript/pkg/ports"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 2 * time.Second

// createEngine initializes an engine with standard CLI conventions.
// The returned closer, when non-nil, releases the cache connection.
func createEngine(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*timescript.Engine, io.Closer) {
	cache, closer := createCache(cfg.Cache, logger)

	opts := []timescript.Option{
		timescript.WithLogger(logger),
		timescript.WithMetrics(metrics),
		timescript.WithValidatorConfig(cfg.Validator),
	}
	if cache != nil {
		opts = append(opts, timescript.WithCache(cache))
	}
	return timescript.New(opts...), closer
}

// createCache builds the configured cache. An unreachable Redis falls back
// to memory so compiling never depends on it.
func createCache(cfg config.CacheConfig, logger *slog.Logger) (ports.DocumentCache, io.Closer) {
	switch cfg.Driver {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		opts := []redis.Option{redis.WithTTL(cfg.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", "addr", cfg.Redis.Addr, "error", err)
			_ = cache.Close()
			return memory.NewCache(), nil
		}
		logger.Debug("Using Redis cache", "addr", cfg.Redis.Addr)
		return cache, cache
	default:
		return memory.NewCache(), nil
	}
}
