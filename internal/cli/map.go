package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/pkg/diagram"
	"github.com/matzehuels/codemap/pkg/integrations/github"
	"github.com/matzehuels/codemap/pkg/source"
	"github.com/matzehuels/codemap/pkg/tree"
)

// defaultFetchTimeout bounds tree fetches in seconds.
const defaultFetchTimeout = 30

// mapOpts holds the command-line flags shared by the map subcommands.
type mapOpts struct {
	mode    string // mindmap, graph, or both
	output  string // output file path (stdout if empty)
	noCache bool   // disable the tree cache
	refresh bool   // bypass cached trees
	timeout int    // fetch timeout in seconds
}

// modes returns the diagram modes selected by the --mode flag.
func (o *mapOpts) modes() ([]diagram.Mode, error) {
	switch o.mode {
	case "both":
		return []diagram.Mode{diagram.ModeMindmap, diagram.ModeGraph}, nil
	default:
		m := diagram.Mode(o.mode)
		if err := diagram.ValidateMode(m); err != nil {
			return nil, err
		}
		return []diagram.Mode{m}, nil
	}
}

// mapCommand creates the map command with source-specific subcommands.
func (c *CLI) mapCommand() *cobra.Command {
	opts := mapOpts{mode: "mindmap", timeout: defaultFetchTimeout}

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Generate Mermaid diagram text from a repository tree",
		Long: `Generate Mermaid diagram text from a repository file tree.

Examples:
  codemap map github golang/go                    # Mindmap from GitHub
  codemap map github golang/go --mode graph       # Graph dialect
  codemap map github golang/go --mode both -o go.mmd
  codemap map local ./myproject                   # Local directory`,
	}

	cmd.PersistentFlags().StringVarP(&opts.mode, "mode", "m", opts.mode, "diagram mode: mindmap, graph, or both")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")
	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "bypass cached trees")
	cmd.PersistentFlags().IntVar(&opts.timeout, "timeout", opts.timeout, "fetch timeout in seconds")

	cmd.AddCommand(c.mapGitHubCommand(&opts))
	cmd.AddCommand(c.mapLocalCommand(&opts))

	return cmd
}

// mapGitHubCommand creates the "map github" subcommand.
func (c *CLI) mapGitHubCommand(opts *mapOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "github <owner/repo>",
		Short: "Generate diagrams from a GitHub repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return err
			}
			src, err := c.newGitHubSource(opts)
			if err != nil {
				return err
			}
			return c.runMap(cmd.Context(), src, opts, owner, repo, repo)
		},
	}
}

// mapLocalCommand creates the "map local" subcommand.
func (c *CLI) mapLocalCommand(opts *mapOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "local <directory>",
		Short: "Generate diagrams from a local directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			return c.runMap(cmd.Context(), source.NewLocalSource(), opts, "", dir, filepath.Base(dir))
		},
	}
}

// newGitHubSource builds a cached GitHub source from the flags and the
// GITHUB_TOKEN environment variable.
func (c *CLI) newGitHubSource(opts *mapOpts) (source.Source, error) {
	treeCache, err := newCache(opts.noCache)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	tok := os.Getenv("GITHUB_TOKEN")
	if tok == "" {
		c.Logger.Debug("GITHUB_TOKEN not set, using unauthenticated requests")
	}
	client := github.NewClient(tok)
	return source.NewGitHubSource(client, treeCache, source.Options{Refresh: opts.refresh}), nil
}

// runMap fetches the tree and writes the requested diagram(s).
func (c *CLI) runMap(ctx context.Context, src source.Source, opts *mapOpts, owner, repo, display string) error {
	modes, err := opts.modes()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(opts.timeout)*time.Second)
	defer cancel()

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, fmt.Sprintf("Fetching tree for %s", display))
	sp.Start()
	root, err := src.Tree(ctx, owner, repo)
	sp.Stop()
	if err != nil {
		return err
	}
	dirs, files := countKinds(root)
	prog.done(fmt.Sprintf("Fetched tree for %s", display))
	printStats(dirs, files)

	for _, mode := range modes {
		text, err := diagram.Generate(root, mode)
		if err != nil {
			return err
		}
		path := outputPath(opts.output, mode, len(modes) > 1)
		if err := writeText(text, path); err != nil {
			return err
		}
		if path != "" {
			printSuccess("Wrote %s diagram", mode)
			printFile(path)
		}
	}

	if opts.output == "" && len(modes) == 1 && owner != "" {
		printNextStep("Preview the directory graph", fmt.Sprintf("codemap render %s/%s -o %s.svg", owner, repo, repo))
	}
	return nil
}

// outputPath derives the per-mode output path. With a single mode the flag
// value is used as-is; with both modes the mode name is inserted before the
// extension (out.mmd becomes out.mindmap.mmd).
func outputPath(output string, mode diagram.Mode, multi bool) string {
	if output == "" || !multi {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "." + string(mode) + ext
}

// writeText writes text to path, or stdout if path is empty.
func writeText(text, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, text)
	return err
}

// countKinds tallies directories and files in the tree, excluding the root.
func countKinds(root *tree.Node) (dirs, files int) {
	for _, child := range root.Children {
		d, f := countKinds(child)
		if child.IsDir() {
			d++
		} else {
			f++
		}
		dirs += d
		files += f
	}
	return dirs, files
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or os.Stdout wrapped
// in nopCloser when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
