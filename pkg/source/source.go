// Package source resolves repository identifiers to file trees.
//
// A Source hides where a tree comes from: the GitHub API (with caching) or
// a local directory walk. Emitters downstream only see [tree.Node].
package source

import (
	"context"
	"time"

	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/tree"
)

// Repository kinds accepted by [ForKind].
const (
	KindGitHub = "github"
	KindLocal  = "local"
)

// Source produces the file tree of a repository.
type Source interface {
	// Tree fetches and builds the tree for owner/repo. For local sources
	// owner is empty and repo is the directory path.
	Tree(ctx context.Context, owner, repo string) (*tree.Node, error)
}

// Options configures source construction.
type Options struct {
	// Refresh bypasses the cache for GitHub sources.
	Refresh bool

	// TTL overrides how long fetched trees stay cached.
	// Zero means [DefaultTreeTTL].
	TTL time.Duration
}

// ValidateKind checks that a repository kind is supported.
func ValidateKind(kind string) error {
	switch kind {
	case KindGitHub, KindLocal:
		return nil
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported repository kind: %q (must be 'github' or 'local')", kind)
	}
}
