package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "tree:github:owner/repo")
	if err != nil || hit {
		t.Errorf("expected clean miss, hit=%v err=%v", hit, err)
	}

	// Round-trip
	if err := c.Set(ctx, "tree:github:owner/repo", []byte(`{"name":"repo"}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "tree:github:owner/repo")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != `{"name":"repo"}` {
		t.Errorf("unexpected data: %s", data)
	}

	// Delete
	if err := c.Delete(ctx, "tree:github:owner/repo"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "tree:github:owner/repo"); hit {
		t.Error("expected miss after Delete")
	}

	// Delete of a missing key is not an error
	if err := c.Delete(ctx, "no-such-key"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}

	// TTL of 0 never expires
	if err := c.Set(ctx, "forever", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheEntriesAndClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, TreeKey("github", "golang", "go"), []byte(`{"name":"go"}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, TreeKey("github", "torvalds", "linux"), []byte(`{"name":"linux"}`), time.Hour); err != nil {
		t.Fatal(err)
	}

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	keys := []string{entries[0].Key, entries[1].Key}
	sort.Strings(keys)
	want := []string{"tree:github:golang/go", "tree:github:torvalds/linux"}
	if keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	for _, e := range entries {
		if e.Size == 0 {
			t.Errorf("entry %s has zero size", e.Key)
		}
		if e.StoredAt.IsZero() {
			t.Errorf("entry %s has zero StoredAt", e.Key)
		}
	}

	removed, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear removed %d, want 2", removed)
	}
	if entries, _ := c.Entries(); len(entries) != 0 {
		t.Errorf("cache not empty after Clear: %v", entries)
	}
	if _, hit, _ := c.Get(ctx, "tree:github:golang/go"); hit {
		t.Error("Get should miss after Clear")
	}

	// Clearing an already-empty cache is fine.
	if removed, err := c.Clear(); err != nil || removed != 0 {
		t.Errorf("second Clear = (%d, %v), want (0, nil)", removed, err)
	}
}

func TestFileCacheForeignEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// A file whose recorded key doesn't match the lookup key must read as
	// a miss and be removed.
	data, err := json.Marshal(cacheEntry{Key: "tree:github:other/repo", Data: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("tree:github:golang/go")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "tree:github:golang/go"); err != nil || hit {
		t.Errorf("foreign entry should be a clean miss, hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("foreign entry should be removed on read")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestTreeKey(t *testing.T) {
	got := TreeKey("github", "golang", "go")
	if got != "tree:github:golang/go" {
		t.Errorf("TreeKey = %s", got)
	}
}
