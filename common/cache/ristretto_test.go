package cache

import (
	"testing"
	"time"
)

func TestGeneralCache_SetGetDelete(t *testing.T) {
	c, err := NewGeneralCache(1000, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	if !c.Set("q1", 42) {
		t.Fatalf("set rejected")
	}
	v, ok := c.Get("q1")
	if !ok || v.(int) != 42 {
		t.Fatalf("get = %v, %v", v, ok)
	}
	c.Delete("q1")
	if _, ok := c.Get("q1"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestGeneralCache_TTL(t *testing.T) {
	c, err := NewGeneralCache(1000, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.SetWithTTL("short", "x", 50*time.Millisecond)
	time.Sleep(1200 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestGeneralCache_RejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewGeneralCache(0, time.Minute); err == nil {
		t.Fatalf("expected error for zero capacity")
	}
}

func TestGeneralCache_OfferIsEventuallyVisible(t *testing.T) {
	c, err := NewGeneralCache(1000, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Offer("k", true)
	c.inner.Wait()
	v, ok := c.Get("k")
	if !ok || v != true {
		t.Fatalf("get = %v, %v", v, ok)
	}
}
