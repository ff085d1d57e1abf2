package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/data/db"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
	"github.com/yungbote/nexus-backend/internal/platform/redis"
)

// OpenDatabase connects and migrates the schema.
func OpenDatabase(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	theDB, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		closeDB(theDB)
		return nil, err
	}
	return theDB, nil
}

// OpenCatalog returns the redis-backed catalog cache, or a pass-through
// cache when redis is not configured or unreachable at startup.
func OpenCatalog(ctx context.Context, cfg Config, log *logger.Logger) (cache.Catalog, *goredis.Client) {
	if !cfg.Redis.Enabled() {
		log.Info("redis not configured, catalog cache disabled")
		return cache.Nop(), nil
	}
	rdb, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, catalog cache disabled", "addr", cfg.Redis.Addr, "error", err)
		return cache.Nop(), nil
	}
	return cache.NewRedisCatalog(rdb, cfg.Redis.CatalogTTL, log), rdb
}

func closeDB(theDB *gorm.DB) {
	if theDB == nil {
		return
	}
	if sqlDB, err := theDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
