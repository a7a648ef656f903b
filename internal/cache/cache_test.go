package cache

import (
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	t.Run("Happy path - set then get", func(t *testing.T) {
		c := New(true)
		etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
		data, got, ok := c.Get("k")
		if !ok || string(data) != `{"a":1}` || got != etag {
			t.Fatalf("Get = %q, %q, %v", data, got, ok)
		}
	})

	t.Run("Expired entries are misses", func(t *testing.T) {
		c := New(true)
		base := time.Unix(1000, 0)
		c.now = func() time.Time { return base }
		c.Set("k", []byte("x"), time.Second)
		c.now = func() time.Time { return base.Add(2 * time.Second) }
		if _, _, ok := c.Get("k"); ok {
			t.Fatal("expected miss after TTL")
		}
		c.evict()
		if n := c.Stats()["total_keys"]; n != 0 {
			t.Fatalf("total_keys after evict = %v", n)
		}
	})

	t.Run("Purge drops everything", func(t *testing.T) {
		c := New(true)
		c.Set("a", []byte("1"), time.Minute)
		c.Set("b", []byte("2"), time.Minute)
		c.Purge()
		if _, _, ok := c.Get("a"); ok {
			t.Fatal("expected miss after purge")
		}
		stats := c.Stats()
		if stats["total_keys"] != 0 || stats["purges"] != 1 {
			t.Fatalf("stats = %v", stats)
		}
	})

	t.Run("Values computed before a purge are not stored", func(t *testing.T) {
		c := New(true)
		gen := c.Generation()
		c.Purge()
		etag := c.SetIfCurrent(gen, "k", []byte("stale"), time.Minute)
		if etag != ComputeETag([]byte("stale")) {
			t.Fatalf("etag = %q", etag)
		}
		if _, _, ok := c.Get("k"); ok {
			t.Fatal("stale value was cached")
		}

		gen = c.Generation()
		c.SetIfCurrent(gen, "k", []byte("fresh"), time.Minute)
		if data, _, ok := c.Get("k"); !ok || string(data) != "fresh" {
			t.Fatalf("Get = %q, %v", data, ok)
		}
	})

	t.Run("Disabled cache never hits", func(t *testing.T) {
		c := New(false)
		etag := c.Set("k", []byte("x"), time.Minute)
		if etag == "" {
			t.Fatal("disabled cache should still compute an ETag")
		}
		if _, _, ok := c.Get("k"); ok {
			t.Fatal("disabled cache returned a hit")
		}
		c.Purge()
	})
}

func TestETag(t *testing.T) {
	a := ComputeETag([]byte("one"))
	b := ComputeETag([]byte("two"))
	if a == b {
		t.Fatal("different payloads share an ETag")
	}
	if a != ComputeETag([]byte("one")) {
		t.Fatal("ETag is not stable")
	}

	tests := []struct {
		name        string
		ifNoneMatch string
		want        bool
	}{
		{"Empty header", "", false},
		{"Wildcard", "*", true},
		{"Same tag", a, true},
		{"Other tag", b, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckETagMatch(tt.ifNoneMatch, a); got != tt.want {
				t.Fatalf("CheckETagMatch(%q) = %v", tt.ifNoneMatch, got)
			}
		})
	}
}
