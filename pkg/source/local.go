package source

import (
	"context"

	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/tree"
)

// LocalSource builds trees by walking a local directory.
type LocalSource struct{}

// NewLocalSource creates a filesystem-backed source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// Tree walks the directory at repo. The owner parameter is unused.
func (s *LocalSource) Tree(ctx context.Context, owner, repo string) (*tree.Node, error) {
	if repo == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "directory path is required")
	}
	root, err := tree.FromDir(repo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "walk %s", repo)
	}
	return root, nil
}
