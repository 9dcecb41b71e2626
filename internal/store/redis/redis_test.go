package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// Requires a running Redis: REDIS_ADDR=localhost:6379 go test ./internal/store/redis

func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis test")
	}
	s, err := New(Options{Addr: addr, Prefix: fmt.Sprintf("folio-test-%d:", time.Now().UnixNano())})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Ping(context.Background()); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return s
}

func TestNewRequiresAddr(t *testing.T) {
	if _, err := New(Options{Addr: "  "}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestRedisGetSetIncr(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "c", "oops"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n, err := s.Incr(ctx, "c"); err != nil || n != 1 {
		t.Fatalf("invalid value should restart at 1, got %d err=%v", n, err)
	}
	if n, _ := s.Incr(ctx, "c"); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if v, ok, _ := s.Get(ctx, "c"); !ok || v != "2" {
		t.Fatalf("unexpected stored value %q", v)
	}
	if err := s.Set(ctx, "c", "12abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n, _ := s.Incr(ctx, "c"); n != 13 {
		t.Fatalf("leading digits should count, got %d", n)
	}
}
