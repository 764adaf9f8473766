package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/matzehuels/codemap/pkg/cache"
)

func TestCacheClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := cache.TreeKey("github", "golang", "go")
	if err := fc.Set(context.Background(), key, []byte(`{"name":"go"}`), time.Hour); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	entries, err := fc.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache should be empty after clear, got %v", entries)
	}
	if _, hit, _ := fc.Get(context.Background(), key); hit {
		t.Error("cleared key should miss")
	}
}

func TestCachePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdg/codemap" {
		t.Errorf("cacheDir = %s", dir)
	}
}
