package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/catalog"
	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/errors"
)

// openCache builds the configured cache backend.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendFile, "":
		return cache.NewFileCache(cfg.Dir)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Backend)
}

// openCatalog builds the configured issued-palette registry.
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (catalog.Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return catalog.NewMongoStore(ctx, catalog.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case config.BackendFile, "":
		return catalog.NewFileStore(cfg.Dir)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown catalog backend %q", cfg.Backend)
}

// loadColornames loads the colornames table through the cache, so the
// upstream list is fetched at most once a day.
func loadColornames(ctx context.Context, cfg config.Config, c cache.Cache, logger *log.Logger) (*colornames.Table, error) {
	src := colornames.NewSource(c, logger)
	src.URL = cfg.Colornames.URL
	return src.Load(ctx)
}
