package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string]("test", 1*time.Second)
	defer c.Close()

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_MissReturnsZero(t *testing.T) {
	c := New[int]("test", time.Second)
	defer c.Close()

	val, found := c.Get("nope")
	if found {
		t.Error("Expected miss")
	}
	if val != 0 {
		t.Errorf("Expected zero value, got %d", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string]("test", 100*time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New[string]("test", time.Hour)
	defer c.Close()

	c.SetWithTTL("short", "v", 50*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(100 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected short-lived entry to expire")
	}
	if _, found := c.Get("long"); !found {
		t.Error("Expected default TTL entry to survive")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string]("test", 1*time.Second)
	defer c.Close()

	c.Set("key1", "value1")
	c.Clear("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_ClearMatching(t *testing.T) {
	c := New[string]("test", time.Minute)
	defer c.Close()

	c.Set("session:a", "alice")
	c.Set("session:b", "bob")
	c.Set("session:c", "alice")
	c.Set("report:a", "alice")

	removed := c.ClearMatching("session:", func(v string) bool { return v == "alice" })
	if removed != 2 {
		t.Errorf("ClearMatching removed = %d, want 2", removed)
	}
	if _, found := c.Get("session:b"); !found {
		t.Error("Expected session:b to remain")
	}
	if _, found := c.Get("report:a"); !found {
		t.Error("Expected report:a to remain")
	}

	if removed := c.ClearMatching("session:", nil); removed != 1 {
		t.Errorf("ClearMatching(nil) removed = %d, want 1", removed)
	}
}

func TestCache_LenAndSweep(t *testing.T) {
	c := New[string]("test", time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.SetWithTTL("b", "2", time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	c.sweep(time.Now())
	removed := c.ClearMatching("", nil)
	if removed != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", removed)
	}
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := New[string]("test", time.Minute)
	c.Close()
	c.Close()
}
