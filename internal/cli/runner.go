package cli

import (
	"context"
	"fmt"

	"github.com/CursiveCrow/cadence/pkg/cache"
	planio "github.com/CursiveCrow/cadence/pkg/io"
	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// newCache builds the schedule cache from config: Redis when configured,
// otherwise the file cache, or the null cache when caching is disabled.
func newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	if cfg.NoCache {
		return cache.NewNullCache(), nil
	}

	if cfg.Redis.Addr != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis %s: %w", cfg.Redis.Addr, err)
		}
		return c, nil
	}

	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache dir %s: %w", dir, err)
	}
	return c, nil
}

// newRunner builds a pipeline runner from config with the command's logger.
func newRunner(ctx context.Context, cfg Config) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// loadPlan imports and normalizes a plan file (JSON or TOML by extension).
func loadPlan(path string) (*plan.Plan, error) {
	p, err := planio.Import(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}
