package cache

import (
	"errors"
	"testing"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Expected a to be cached")
	}
	c.Set("c", 3) // evicts b

	if _, ok := c.Get("b"); ok {
		t.Errorf("Expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Expected a=1, got %v %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}
}

func TestLRUSetOverwrites(t *testing.T) {
	c := NewLRU[string](0)
	c.Set("k", "old")
	c.Set("k", "new")
	if v, _ := c.Get("k"); v != "new" {
		t.Errorf("Expected new, got %q", v)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestGetOrCreate(t *testing.T) {
	c := NewLRU[int](4)
	calls := 0
	build := func() (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("answer", build)
		if err != nil || v != 42 {
			t.Fatalf("Expected 42, got %v (err=%v)", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected build once, got %d", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Errorf("failed build must not be cached")
	}
}
