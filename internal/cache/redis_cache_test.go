package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

type part struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := ProductKey("65f0c0ffee")

	var got part
	hit, err := c.GetJSON(ctx, key, &got)
	if err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	if err := c.SetJSON(ctx, key, part{Name: "Crank", Price: 89.9}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	hit, err = c.GetJSON(ctx, key, &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got.Name != "Crank" || got.Price != 89.9 {
		t.Fatalf("unexpected value %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if hit, _ := c.GetJSON(ctx, key, &got); hit {
		t.Fatal("expected expiry")
	}
}

func TestRedisCacheDel(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_ = c.SetJSON(ctx, "a", 1, 0)
	_ = c.SetJSON(ctx, "b", 2, 0)
	if err := c.Del(ctx, "a", "b"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if mr.Exists("a") || mr.Exists("b") {
		t.Fatal("keys survived Del")
	}
	if err := c.Del(ctx); err != nil {
		t.Fatalf("Del with no keys: %v", err)
	}
}

func TestRedisCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := mr.Set("product:x", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got part
	hit, err := c.GetJSON(ctx, "product:x", &got)
	if err != nil || hit {
		t.Fatalf("expected miss for corrupt entry, got hit=%v err=%v", hit, err)
	}
	if mr.Exists("product:x") {
		t.Fatal("corrupt entry not dropped")
	}
}

func TestRedisCacheUnavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var got part
	if _, err := c.GetJSON(context.Background(), "k", &got); err == nil {
		t.Fatal("expected error from a closed server")
	}
}

func TestNopAlwaysMisses(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()
	_ = c.SetJSON(ctx, "k", 1, time.Minute)
	if hit, err := c.GetJSON(ctx, "k", new(int)); hit || err != nil {
		t.Fatalf("expected miss, got %v %v", hit, err)
	}
}
