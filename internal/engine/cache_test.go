package engine

import (
	"context"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("profile_aggregate", "resume-bytes", "", "janedoe")
	b := CacheKey("profile_aggregate", "resume-bytes", "", "janedoe")
	if a != b {
		t.Errorf("same parts produced different keys: %q vs %q", a, b)
	}
	if c := CacheKey("profile_aggregate", "other-bytes", "", "janedoe"); c == a {
		t.Error("different parts produced the same key")
	}
	if len(a) > 40 {
		t.Errorf("key too long for a hash-based key: %q", a)
	}
}

func TestCacheGetSet(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)

	key := CacheKey("test", "get-set")
	if _, ok := CacheGet(context.Background(), key); ok {
		t.Fatal("unexpected hit before set")
	}

	CacheSet(context.Background(), key, []byte("hello"))
	data, ok := CacheGet(context.Background(), key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(data) != "hello" {
		t.Errorf("data = %q, want hello", data)
	}
}

func TestCacheExpiry(t *testing.T) {
	InitCache("", 10*time.Millisecond, 100, time.Minute)

	key := CacheKey("test", "expiry")
	CacheSet(context.Background(), key, []byte("short-lived"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := CacheGet(context.Background(), key); ok {
		t.Error("entry should have expired")
	}
}

func TestCacheJSONRoundTrip(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)

	type payload struct {
		Name  string   `json:"name"`
		Langs []string `json:"langs"`
	}
	key := CacheKey("test", "json")
	CacheStoreJSON(context.Background(), key, payload{Name: "jane", Langs: []string{"Go", "Rust"}})

	got, ok := CacheLoadJSON[payload](context.Background(), key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Name != "jane" || len(got.Langs) != 2 {
		t.Errorf("decoded payload = %+v", got)
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 3, time.Minute)

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		CacheSet(context.Background(), CacheKey("evict", k), []byte(k))
		time.Sleep(time.Millisecond) // distinct expiry times for oldest-first eviction
	}

	count := 0
	resultCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("L1 holds %d entries, want at most 3", count)
	}

	// The most recent entry survives.
	if _, ok := CacheGet(context.Background(), CacheKey("evict", "e")); !ok {
		t.Error("newest entry was evicted")
	}
}
