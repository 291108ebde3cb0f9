package enrichment

import "testing"

func TestContextCache_PutGet(t *testing.T) {
	c := newContextCache(10)

	c.put(1, attributeSet{"a": "b"})

	attrs, ok := c.get(1)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if attrs["a"] != "b" {
		t.Errorf("expected a=b, got %v", attrs["a"])
	}
	if _, ok := c.get(2); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestContextCache_UpdateDoesNotGrowOrder(t *testing.T) {
	c := newContextCache(10)

	c.put(1, attributeSet{"v": 1})
	c.put(1, attributeSet{"v": 2})

	if c.size() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.size())
	}
	if len(c.order) != 1 {
		t.Fatalf("expected 1 order slot, got %d", len(c.order))
	}
	attrs, _ := c.get(1)
	if attrs["v"] != 2 {
		t.Errorf("expected updated value 2, got %v", attrs["v"])
	}
}

func TestContextCache_TrimsOldestFifth(t *testing.T) {
	c := newContextCache(10)

	for i := uintptr(1); i <= 10; i++ {
		if evicted := c.put(i, attributeSet{"i": i}); evicted != 0 {
			t.Fatalf("no eviction expected while within bound, got %d", evicted)
		}
	}
	if evicted := c.put(11, attributeSet{"i": uintptr(11)}); evicted != 2 {
		t.Fatalf("expected 2 evictions, got %d", evicted)
	}

	// 11 entries exceeded the bound of 10; the oldest 2 (10/5) are dropped.
	if c.size() != 9 {
		t.Fatalf("expected 9 entries after trim, got %d", c.size())
	}
	if _, ok := c.get(1); ok {
		t.Error("oldest entry must be evicted")
	}
	if _, ok := c.get(2); ok {
		t.Error("second-oldest entry must be evicted")
	}
	if _, ok := c.get(3); !ok {
		t.Error("entry 3 must survive the trim")
	}
	if _, ok := c.get(11); !ok {
		t.Error("newest entry must survive the trim")
	}
}

func TestContextCache_Clear(t *testing.T) {
	c := newContextCache(10)
	c.put(1, attributeSet{})
	c.put(2, attributeSet{})

	c.clear()

	if c.size() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.size())
	}
	// Clear must be safe to call again and the cache must stay usable.
	c.clear()
	c.put(3, attributeSet{"x": "y"})
	if _, ok := c.get(3); !ok {
		t.Error("cache must remain usable after clear")
	}
}
