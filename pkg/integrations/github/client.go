// Package github provides access to the GitHub API for repository trees
// and metadata.
//
// The client fetches the full recursive file listing of a repository via
// the git-trees endpoint and surfaces upstream failures with the status
// text preserved, so callers can show users what GitHub actually said.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/httputil"
)

// Client provides access to GitHub repository content.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client with the given access token.
// Pass an empty token for unauthenticated requests (lower rate limits).
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.github.com",
	}
}

// TreeEntry represents a file or directory in the repository tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" or "tree"
	Size int64  `json:"size,omitempty"`
}

// RepoInfo contains repository metadata.
type RepoInfo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

// GetTree retrieves the full recursive file listing of a repository.
// Entries come back in the order GitHub lists them (path-sorted), with
// directories appearing before their contents. Truncated is true when the
// repository is too large for a single listing and the result is partial.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) (entries []TreeEntry, truncated bool, err error) {
	if ref == "" {
		ref = "HEAD"
	}
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.baseURL, owner, repo, ref)

	var treeResp treeResponse
	err = httputil.RetryWithBackoff(ctx, func() error {
		return c.getJSON(ctx, url, &treeResp)
	})
	if err != nil {
		return nil, false, err
	}

	entries = make([]TreeEntry, 0, len(treeResp.Tree))
	for _, item := range treeResp.Tree {
		entries = append(entries, TreeEntry{
			Path: item.Path,
			Type: item.Type,
			Size: item.Size,
		})
	}
	return entries, treeResp.Truncated, nil
}

// GetRepoInfo retrieves repository metadata.
func (c *Client) GetRepoInfo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	var info RepoInfo
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.getJSON(ctx, url, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// getJSON performs a GET request and JSON-decodes the response into v.
// Non-success statuses become structured errors carrying the status text;
// 5xx responses are marked retryable.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "send request"))
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GitHub API error (%s)", statusText(resp))
	case resp.StatusCode >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "GitHub API error (%s)", statusText(resp)))
	default:
		return errors.New(errors.ErrCodeNetwork, "GitHub API error (%s)", statusText(resp))
	}
}

// statusText returns the status line plus a trimmed body excerpt, which
// usually carries GitHub's human-readable message.
func statusText(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	excerpt := strings.TrimSpace(string(body))
	if excerpt == "" {
		return resp.Status
	}
	return resp.Status + ": " + excerpt
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}
