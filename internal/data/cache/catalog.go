package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const (
	KeySuggestedRoadmaps = "nexus:catalog:suggested_roadmaps"
	KeyChallenges        = "nexus:catalog:challenges"

	DefaultTTL = 10 * time.Minute
)

// Catalog is a read-through cache for shared, rarely-changing lists.
// Cache failures never fail the read; they fall back to load.
type Catalog interface {
	// GetOrLoad fills dst from key, or from load (and stores the result) on a miss.
	GetOrLoad(ctx context.Context, key string, dst any, load func(ctx context.Context) (any, error)) error
	Invalidate(ctx context.Context, keys ...string) error
}

type redisCatalog struct {
	rdb *goredis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisCatalog(rdb *goredis.Client, ttl time.Duration, baseLog *logger.Logger) Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisCatalog{rdb: rdb, ttl: ttl, log: baseLog.With("service", "CatalogCache")}
}

func (c *redisCatalog) GetOrLoad(ctx context.Context, key string, dst any, load func(ctx context.Context) (any, error)) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jerr := json.Unmarshal(raw, dst)
		if jerr == nil {
			return nil
		}
		c.log.Warn("cache entry undecodable, reloading", "key", key, "error", jerr)
	case errors.Is(err, goredis.Nil):
	default:
		c.log.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		return err
	}
	raw, err = json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
	return json.Unmarshal(raw, dst)
}

func (c *redisCatalog) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

type nopCatalog struct{}

// Nop always loads. Used when redis is not configured.
func Nop() Catalog { return nopCatalog{} }

func (nopCatalog) GetOrLoad(ctx context.Context, _ string, dst any, load func(ctx context.Context) (any, error)) error {
	v, err := load(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (nopCatalog) Invalidate(context.Context, ...string) error { return nil }
