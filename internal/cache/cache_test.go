package cache

import (
	"testing"
	"time"
)

func TestCompletionKey_Distinct(t *testing.T) {
	base := CompletionKey("gpt-4o-mini", "prompt", []byte{1, 2})

	variants := []string{
		CompletionKey("gpt-4o", "prompt", []byte{1, 2}),
		CompletionKey("gpt-4o-mini", "other prompt", []byte{1, 2}),
		CompletionKey("gpt-4o-mini", "prompt", []byte{1, 3}),
		CompletionKey("gpt-4o-mini", "prompt", nil),
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d produced the same key as base", i)
		}
	}

	if CompletionKey("gpt-4o-mini", "prompt", []byte{1, 2}) != base {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "value" {
		t.Errorf("expected hit with value, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := CompletionKey("m", "p", nil)
	if err := c.Set(key, []byte("cached"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "cached" {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}

	// Entry with an already-passed deadline is treated as a miss
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// A fresh layered cache over the same dir should hit via disk
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c2.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected disk hit through new instance, got %q found=%v", val, found)
	}
}
