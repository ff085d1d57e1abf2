package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type item struct {
	Title string `json:"title"`
}

func TestNopCatalogAlwaysLoads(t *testing.T) {
	c := Nop()
	calls := 0
	load := func(context.Context) (any, error) {
		calls++
		return []item{{Title: "Go"}}, nil
	}

	for i := 0; i < 2; i++ {
		var out []item
		if err := c.GetOrLoad(context.Background(), KeyChallenges, &out, load); err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if len(out) != 1 || out[0].Title != "Go" {
			t.Fatalf("unexpected result: %+v", out)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 loads, got %d", calls)
	}

	boom := errors.New("boom")
	var out []item
	if err := c.GetOrLoad(context.Background(), KeyChallenges, &out, func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRedisCatalogReadThrough(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis cache tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	key := "nexus:test:" + time.Now().Format("150405.000000000")
	c := NewRedisCatalog(rdb, time.Minute, logger.Nop())
	t.Cleanup(func() { _ = c.Invalidate(ctx, key) })

	calls := 0
	load := func(context.Context) (any, error) {
		calls++
		return []item{{Title: "cached"}}, nil
	}
	for i := 0; i < 3; i++ {
		var out []item
		if err := c.GetOrLoad(ctx, key, &out, load); err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if out[0].Title != "cached" {
			t.Fatalf("unexpected result: %+v", out)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}

	if err := c.Invalidate(ctx, key); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	var out []item
	_ = c.GetOrLoad(ctx, key, &out, load)
	if calls != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", calls)
	}
}
