package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, cfg Config) *Cache {
	t.Helper()
	c := New(cfg)
	t.Cleanup(c.Close)
	return c
}

func TestGetSet(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	if _, ok := c.Get("sin/1"); ok {
		t.Fatal("Get on empty cache hit")
	}
	c.Set("sin/1", 0.8414709848078965)
	v, ok := c.Get("sin/1")
	if !ok || v != 0.8414709848078965 {
		t.Errorf("Get() = %v, %v", v, ok)
	}

	c.Delete("sin/1")
	if _, ok := c.Get("sin/1"); ok {
		t.Error("Get after Delete hit")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 {
		t.Errorf("Stats() = %+v, want 1 hit and 2 misses", s)
	}
	if s.HitRate < 33 || s.HitRate > 34 {
		t.Errorf("HitRate = %v, want about 33.3", s.HitRate)
	}
}

func TestExpiration(t *testing.T) {
	c := newTestCache(t, Config{MaxItems: 10, TTL: time.Hour})

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.Set("long", 2)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry still returned")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("live entry missing")
	}

	c.SetWithTTL("forever", 3, 0)
	c.cleanup()
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL removed by cleanup")
	}
}

func TestEvictLeastRecent(t *testing.T) {
	c := newTestCache(t, Config{MaxItems: 3})

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	c.Set("k1", 10) // overwrite does not evict
	if c.Size() != 3 {
		t.Fatalf("Size() = %d after overwrite, want 3", c.Size())
	}

	c.Set("k3", 3)
	if c.Size() != 3 {
		t.Errorf("Size() = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("least recently used entry k0 not evicted")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}

	// reads and writes refresh k1 and k2, leaving k3 least recently used
	if _, ok := c.Get("k2"); !ok {
		t.Fatal("k2 missing")
	}
	c.Set("k1", 11)
	c.Get("k2")
	c.Set("k4", 4)
	for _, key := range []string{"k1", "k2", "k4"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s evicted, want k3 evicted", key)
		}
	}
	if _, ok := c.Get("k3"); ok {
		t.Error("least recently used entry k3 not evicted")
	}
}

func TestGetOrSet(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return "1+2i", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("add/1/2i", compute)
		if err != nil || v != "1+2i" {
			t.Fatalf("GetOrSet() = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	failure := errors.New("degenerate")
	if _, err := c.GetOrSet("div/1/0", func() (interface{}, error) { return nil, failure }); err != failure {
		t.Errorf("GetOrSet error = %v, want %v", err, failure)
	}
	if _, ok := c.Get("div/1/0"); ok {
		t.Error("failed computation was cached")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := newTestCache(t, Config{MaxItems: 50})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Size() > 50 {
		t.Errorf("Size() = %d exceeds MaxItems", c.Size())
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear", c.Size())
	}
	c.Close()
	c.Close()
}
