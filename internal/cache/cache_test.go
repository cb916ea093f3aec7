package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestCache[T any](size int, ttl time.Duration) (*LRUCache[T], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[T](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCacheExpiration(t *testing.T) {
	c, clock := newTestCache[int](4, time.Minute)
	c.Set("a", 1)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %v %v", v, ok)
	}
	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("entry should be expired")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry not removed, size %d", c.Size())
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("stats = %d/%d", hits, misses)
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c, _ := newTestCache[string](2, time.Hour)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // b becomes least recently used
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should still be cached")
	}
	c.Delete("a")
	if c.Size() != 1 {
		t.Fatalf("size = %d, want 1", c.Size())
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c, clock := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	clock.t = clock.t.Add(30 * time.Second)
	c.Set("c", 3)
	clock.t = clock.t.Add(45 * time.Second)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("cleaned %d, want 2", n)
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("c should still be live")
	}
}

func TestManagerCleanAllAndStop(t *testing.T) {
	c, clock := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	clock.t = clock.t.Add(time.Hour)

	m := NewManager(nil)
	m.Register(c)
	if n := m.CleanAll(); n != 1 {
		t.Fatalf("CleanAll removed %d, want 1", n)
	}

	m.StartCleanup(time.Millisecond)
	m.Stop()
	m.Stop()
	m.StartCleanup(time.Millisecond) // no restart after stop
	m.Stop()
}

func TestCachedReader(t *testing.T) {
	var calls atomic.Int32
	next := ports.GridReaderFunc(func(_ context.Context, id, rng string) (core.Grid, error) {
		calls.Add(1)
		if rng == "bad" {
			return nil, errors.New("boom")
		}
		return core.Grid{{id, rng}}, nil
	})
	r := NewCachedReader(next, 8, time.Hour)
	ctx := context.Background()

	g1, err := r.ReadGrid(ctx, "id", "Portfolio")
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	g1[0][0] = "mutated"

	g2, _ := r.ReadGrid(ctx, "id", "Portfolio")
	if g2[0][0] != "id" {
		t.Fatalf("cached grid was mutated through a returned copy: %q", g2)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}

	r.ReadGrid(ctx, "other", "Portfolio")
	if calls.Load() != 2 {
		t.Fatalf("different spreadsheet must not share a cache entry")
	}

	r.Invalidate("id", "Portfolio")
	r.ReadGrid(ctx, "id", "Portfolio")
	if calls.Load() != 3 {
		t.Fatalf("expected refetch after invalidate, calls %d", calls.Load())
	}

	if _, err := r.ReadGrid(ctx, "id", "bad"); err == nil {
		t.Fatal("expected upstream error")
	}
	if _, err := r.ReadGrid(ctx, "id", "bad"); err == nil || calls.Load() != 5 {
		t.Fatalf("errors must not be cached, calls %d", calls.Load())
	}
}
