package cache

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[int](10)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected missing key to not exist")
	}

	c.Set("key1", 43)
	if val, _ := c.Get("key1"); val != 43 {
		t.Errorf("expected overwrite to 43, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the oldest.
	c.Get("a")
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to survive", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", s.Evictions)
	}
}

func TestCacheUnlimited(t *testing.T) {
	c := New[int](0)
	for i := 0; i < 1000; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	if c.Len() != 1000 {
		t.Errorf("expected 1000 entries, got %d", c.Len())
	}
}

func TestCacheLoad(t *testing.T) {
	c := New[int](10)
	calls := 0
	load := func() (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Load("k", load)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if v != 7 {
			t.Errorf("expected 7, got %d", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected loader called once, got %d", calls)
	}
}

func TestCacheLoadErrorNotCached(t *testing.T) {
	c := New[int](10)
	errBoom := errors.New("boom")

	if _, err := c.Load("k", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed load was cached")
	}

	v, err := c.Load("k", func() (int, error) { return 5, nil })
	if err != nil || v != 5 {
		t.Errorf("expected retry to succeed, got %d, %v", v, err)
	}
}

func TestCacheLoadConcurrent(t *testing.T) {
	c := New[int](10)
	var calls atomic.Int32
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := c.Load("shared", func() (int, error) {
				calls.Add(1)
				return 99, nil
			})
			if err != nil || v != 99 {
				t.Errorf("Load = %d, %v", v, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	// Late arrivals may miss the singleflight window but then hit the entry.
	if n := calls.Load(); n < 1 || n > 16 {
		t.Errorf("unexpected loader call count %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestCacheStats(t *testing.T) {
	c := New[int](10)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("expected 2 hits / 1 miss, got %d / %d", s.Hits, s.Misses)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("unexpected hit rate %f", s.HitRate)
	}
	if s.Capacity != 10 || s.Len != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}
