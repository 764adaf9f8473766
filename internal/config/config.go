// Package config loads serve-mode configuration from an optional TOML
// file overlaid with environment variables. Environment variables win so
// deployments can override a checked-in file without editing it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all serve-mode settings.
type Config struct {
	// Addr is the HTTP listen address (e.g. ":8080").
	Addr string `toml:"addr"`

	// GitHubToken authenticates tree fetches. Empty means unauthenticated
	// requests with lower rate limits.
	GitHubToken string `toml:"github_token"`

	// CacheBackend selects the tree cache: "file", "redis", or "none".
	CacheBackend string        `toml:"cache_backend"`
	CacheDir     string        `toml:"cache_dir"`
	TreeTTL      time.Duration `toml:"tree_ttl"`

	// Redis settings (cache_backend = "redis").
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// MongoURI enables the emission history store when non-empty.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultPath returns the default config file location
// (~/.config/codemap/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "codemap", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "codemap", "config.toml"), nil
}

// Load reads the config file at path (skipped silently if absent), then
// applies environment overrides and defaults. An empty path means the
// default location.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:          ":8080",
		CacheBackend:  "file",
		TreeTTL:       15 * time.Minute,
		MongoDatabase: "codemap",
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Addr = envOr("CODEMAP_ADDR", cfg.Addr)
	cfg.GitHubToken = envOr("GITHUB_TOKEN", cfg.GitHubToken)
	cfg.CacheBackend = envOr("CODEMAP_CACHE", cfg.CacheBackend)
	cfg.CacheDir = envOr("CODEMAP_CACHE_DIR", cfg.CacheDir)
	cfg.TreeTTL = envDuration("CODEMAP_TREE_TTL", cfg.TreeTTL)
	cfg.RedisAddr = envOr("CODEMAP_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envOr("CODEMAP_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = envInt("CODEMAP_REDIS_DB", cfg.RedisDB)
	cfg.MongoURI = envOr("CODEMAP_MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = envOr("CODEMAP_MONGO_DB", cfg.MongoDatabase)
}

// Validate checks cross-field constraints for serve mode.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case "file", "none":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required when cache_backend is redis")
		}
	default:
		return fmt.Errorf("invalid cache_backend: %q (must be 'file', 'redis', or 'none')", c.CacheBackend)
	}
	if c.TreeTTL < 0 {
		return fmt.Errorf("tree_ttl must not be negative")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
