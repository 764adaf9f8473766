package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a missing file so only defaults and env apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %s", cfg.Addr)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend = %s", cfg.CacheBackend)
	}
	if cfg.TreeTTL != 15*time.Minute {
		t.Errorf("TreeTTL = %v", cfg.TreeTTL)
	}
	if cfg.MongoDatabase != "codemap" {
		t.Errorf("MongoDatabase = %s", cfg.MongoDatabase)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
addr = ":9090"
cache_backend = "redis"
redis_addr = "localhost:6379"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %s", cfg.Addr)
	}
	if cfg.CacheBackend != "redis" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("redis settings not applied: %+v", cfg)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %s", cfg.MongoURI)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`addr = ":9090"`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CODEMAP_ADDR", ":7070")
	t.Setenv("CODEMAP_CACHE", "none")
	t.Setenv("CODEMAP_TREE_TTL", "1h")
	t.Setenv("CODEMAP_REDIS_DB", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("env should win over file: Addr = %s", cfg.Addr)
	}
	if cfg.CacheBackend != "none" {
		t.Errorf("CacheBackend = %s", cfg.CacheBackend)
	}
	if cfg.TreeTTL != time.Hour {
		t.Errorf("TreeTTL = %v", cfg.TreeTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file backend", Config{CacheBackend: "file"}, false},
		{"none backend", Config{CacheBackend: "none"}, false},
		{"redis with addr", Config{CacheBackend: "redis", RedisAddr: "localhost:6379"}, false},
		{"redis without addr", Config{CacheBackend: "redis"}, true},
		{"unknown backend", Config{CacheBackend: "memcached"}, true},
		{"negative ttl", Config{CacheBackend: "file", TreeTTL: -time.Minute}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
