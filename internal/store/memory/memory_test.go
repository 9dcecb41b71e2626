package memory

import (
	"context"
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "41"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, _ := s.Get(ctx, "k")
	if !ok || v != "41" {
		t.Fatalf("unexpected value %q ok=%v", v, ok)
	}
}

func TestIncr(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Set(ctx, "garbage", "abc")
	if n, _ := s.Incr(ctx, "garbage"); n != 1 {
		t.Fatalf("invalid value should restart at 1, got %d", n)
	}
	_ = s.Set(ctx, "neg", "-5")
	if n, _ := s.Incr(ctx, "neg"); n != 1 {
		t.Fatalf("negative value should restart at 1, got %d", n)
	}
	_ = s.Set(ctx, "suffix", "12abc")
	if n, _ := s.Incr(ctx, "suffix"); n != 13 {
		t.Fatalf("leading digits should count, got %d", n)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Incr(ctx, "c")
		}()
	}
	wg.Wait()
	if v, _, _ := s.Get(ctx, "c"); v != "50" {
		t.Fatalf("expected 50 after concurrent increments, got %s", v)
	}
	if s.Keys() != 3 {
		t.Fatalf("expected 3 keys, got %d", s.Keys())
	}
}
