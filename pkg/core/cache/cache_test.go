package cache

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCache_SetGet(t *testing.T) {
	c := New(Config{MaxItems: 10, TTL: time.Minute})
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 50 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(Config{MaxItems: 10, TTL: time.Minute, CleanupInterval: 5 * time.Millisecond})
	defer c.Close()

	c.SetWithTTL("short", "v", time.Millisecond)
	c.SetWithTTL("forever", "v", 0)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry returned")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New(Config{MaxItems: 2, TTL: time.Minute})
	defer c.Close()

	c.Set("first", 1)
	time.Sleep(time.Millisecond)
	c.Set("second", 2)
	time.Sleep(time.Millisecond)
	c.Set("third", 3)

	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}

	c.Set("third", 33)
	if c.Size() != 2 {
		t.Errorf("overwriting a key should not evict, Size() = %d", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	calls := 0
	fn := func() (interface{}, error) {
		calls++
		return "computed", nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		if err != nil || v != "computed" {
			t.Fatalf("GetOrSet() = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	_, err := c.GetOrSet("fail", func() (interface{}, error) { return nil, errors.New("boom") })
	if err == nil {
		t.Error("GetOrSet() should return fn error")
	}
	if _, ok := c.Get("fail"); ok {
		t.Error("errors must not be cached")
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := New(DefaultConfig())
	c.Close()
	c.Close()
}

func TestResultKey(t *testing.T) {
	a, err := ResultKey(4, map[string]interface{}{"tol": "1e-6", "max_iter": 50})
	if err != nil {
		t.Fatalf("ResultKey() error = %v", err)
	}
	b, _ := ResultKey(4, map[string]interface{}{"max_iter": 50, "tol": "1e-6"})
	if a != b {
		t.Errorf("ResultKey() not stable across map order: %s != %s", a, b)
	}
	c, _ := ResultKey(5, map[string]interface{}{"tol": "1e-6", "max_iter": 50})
	if a == c {
		t.Error("different tasks must give different keys")
	}
	if _, err := ResultKey(1, map[string]interface{}{"bad": func() {}}); err == nil {
		t.Error("ResultKey() should fail for unencodable params")
	}
}
