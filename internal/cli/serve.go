package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/internal/api"
	"github.com/matzehuels/codemap/internal/config"
	"github.com/matzehuels/codemap/internal/store"
	"github.com/matzehuels/codemap/pkg/cache"
	"github.com/matzehuels/codemap/pkg/integrations/github"
	"github.com/matzehuels/codemap/pkg/source"
)

// shutdownTimeout bounds graceful server shutdown.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server exposing tree fetching and diagram generation.

Configuration is read from a TOML file (default ~/.config/codemap/config.toml)
overlaid with environment variables (CODEMAP_ADDR, GITHUB_TOKEN,
CODEMAP_CACHE, CODEMAP_REDIS_ADDR, CODEMAP_MONGO_URI, ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	treeCache, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer treeCache.Close()

	st, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	client := github.NewClient(cfg.GitHubToken)
	sources := map[string]source.Source{
		// Local sources are CLI-only: the API never walks the server's
		// filesystem on behalf of a request.
		source.KindGitHub: source.NewGitHubSource(client, treeCache, source.Options{TTL: cfg.TreeTTL}),
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewServer(sources, st, c.Logger),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// serveCache builds the tree cache selected by the config.
func (c *CLI) serveCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
		return rc, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.CacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	}
}

// serveStore builds the emission history store. Without a Mongo URI the
// history is kept in memory only.
func (c *CLI) serveStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.MongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("emission history backed by mongodb", "database", cfg.MongoDatabase)
	return st, nil
}
