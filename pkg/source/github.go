package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/codemap/pkg/cache"
	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/integrations/github"
	"github.com/matzehuels/codemap/pkg/tree"
)

// DefaultTreeTTL is how long fetched trees stay fresh in the cache.
const DefaultTreeTTL = 15 * time.Minute

// treeLister is the subset of the GitHub client used by GitHubSource.
type treeLister interface {
	GetTree(ctx context.Context, owner, repo, ref string) ([]github.TreeEntry, bool, error)
}

// GitHubSource fetches repository trees from the GitHub API, building the
// nested tree from the flat recursive listing and caching the result.
type GitHubSource struct {
	client  treeLister
	cache   cache.Cache
	ttl     time.Duration
	refresh bool
}

// NewGitHubSource creates a GitHub-backed source. Pass a [cache.NullCache]
// to disable caching.
func NewGitHubSource(client *github.Client, c cache.Cache, opts Options) *GitHubSource {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTreeTTL
	}
	return &GitHubSource{
		client:  client,
		cache:   c,
		ttl:     ttl,
		refresh: opts.Refresh,
	}
}

// Tree fetches the repository tree, consulting the cache first.
func (s *GitHubSource) Tree(ctx context.Context, owner, repo string) (*tree.Node, error) {
	if err := github.ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	key := cache.TreeKey(KindGitHub, owner, repo)
	if !s.refresh {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var root tree.Node
			if err := json.Unmarshal(data, &root); err == nil {
				return &root, nil
			}
			// Corrupt entry: fall through to a fresh fetch.
			_ = s.cache.Delete(ctx, key)
		}
	}

	entries, truncated, err := s.client.GetTree(ctx, owner, repo, "")
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err // already classified by the client
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch tree for %s/%s", owner, repo)
	}

	treeEntries := make([]tree.Entry, 0, len(entries))
	for _, e := range entries {
		kind := tree.KindFile
		if e.Type == "tree" {
			kind = tree.KindDirectory
		}
		treeEntries = append(treeEntries, tree.Entry{Path: e.Path, Kind: kind, Size: e.Size})
	}

	root := tree.FromEntries(repo, treeEntries)
	if truncated {
		// Partial listings still render; don't cache them.
		return root, nil
	}

	if data, err := json.Marshal(root); err == nil {
		_ = s.cache.Set(ctx, key, data, s.ttl)
	}
	return root, nil
}
