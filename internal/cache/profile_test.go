package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest-go/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *ProfileCache
	ctx := context.Background()

	c.Set(ctx, model.UserResponse{ID: "u-1"})
	c.Invalidate(ctx, "u-1")
	if _, ok := c.Get(ctx, "u-1"); ok {
		t.Fatal("nil cache reported a hit")
	}
	if NewProfileCache(nil, time.Minute) != nil {
		t.Fatal("NewProfileCache(nil) should return nil")
	}
}

func TestSetGetInvalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewProfileCache(client, time.Minute)
	ctx := context.Background()

	profile := model.UserResponse{ID: "u-1", Email: "alice@x.com", Name: "Alice", Gender: "female"}
	c.Set(ctx, profile)

	got, ok := c.Get(ctx, "u-1")
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if got != profile {
		t.Errorf("Get() = %+v, want %+v", got, profile)
	}

	if ttl := mr.TTL(keyPrefix + "u-1"); ttl != time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, time.Minute)
	}

	c.Invalidate(ctx, "u-1")
	if _, ok := c.Get(ctx, "u-1"); ok {
		t.Fatal("Get() hit after Invalidate()")
	}
}

func TestExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewProfileCache(client, time.Minute)
	ctx := context.Background()

	c.Set(ctx, model.UserResponse{ID: "u-1"})
	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, "u-1"); ok {
		t.Fatal("Get() hit after ttl elapsed")
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewProfileCache(client, time.Minute)

	if err := mr.Set(keyPrefix+"u-1", "{not json"); err != nil {
		t.Fatalf("miniredis Set failed: %v", err)
	}
	if _, ok := c.Get(context.Background(), "u-1"); ok {
		t.Fatal("Get() hit on corrupt entry")
	}
}

func TestNewRedisClient(t *testing.T) {
	if NewRedisClient(context.Background(), "", "", 0) != nil {
		t.Fatal("empty addr should disable redis")
	}

	mr, _ := newTestRedis(t)
	client := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	if client == nil {
		t.Fatal("expected client for reachable server")
	}
	client.Close()

	addr := mr.Addr()
	mr.Close()
	if NewRedisClient(context.Background(), addr, "", 0) != nil {
		t.Fatal("expected nil client for unreachable server")
	}
}
