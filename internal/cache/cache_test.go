package cache

import (
	"testing"
	"time"

	"github.com/caseflow-io/caseflow/internal/importer"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(10, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Fatal("empty cache should miss")
	}

	result := &importer.ImportResult{Success: true}
	if err := c.Set("k1", result); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found := c.Get("k1")
	if !found || got != result {
		t.Fatalf("expected cached pointer back, found=%v", found)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	c.Set("k1", &importer.ImportResult{})
	c.Clear()

	if _, found := c.Get("k1"); found {
		t.Fatal("cleared cache should miss")
	}
	if c.Stats().Size != 0 {
		t.Errorf("size after clear = %d", c.Stats().Size)
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2, time.Minute)
	c.Set("k1", &importer.ImportResult{})
	time.Sleep(time.Millisecond)
	c.Set("k2", &importer.ImportResult{})
	time.Sleep(time.Millisecond)
	c.Set("k3", &importer.ImportResult{})

	if size := c.Stats().Size; size > 2 {
		t.Errorf("cache exceeded max size: %d", size)
	}
	if _, found := c.Get("k1"); found {
		t.Error("oldest entry should have been evicted")
	}
	if _, found := c.Get("k3"); !found {
		t.Error("newest entry should survive eviction")
	}
}

func TestDigestKey(t *testing.T) {
	a := []importer.NamedFile{{Name: "a.csv", Data: []byte("1,2")}}
	b := []importer.NamedFile{{Name: "a.csv", Data: []byte("1,2")}}
	changed := []importer.NamedFile{{Name: "a.csv", Data: []byte("1,3")}}
	renamed := []importer.NamedFile{{Name: "b.csv", Data: []byte("1,2")}}

	if DigestKey(a) != DigestKey(b) {
		t.Error("identical uploads must share a digest")
	}
	if DigestKey(a) == DigestKey(changed) {
		t.Error("content change must change the digest")
	}
	if DigestKey(a) == DigestKey(renamed) {
		t.Error("name change must change the digest")
	}
}
