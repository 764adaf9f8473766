package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/pkg/diagram"
	"github.com/matzehuels/codemap/pkg/integrations/github"
)

// renderCommand creates the Graphviz preview command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := mapOpts{timeout: defaultFetchTimeout}

	cmd := &cobra.Command{
		Use:   "render <owner/repo>",
		Short: "Render a directory graph preview as SVG",
		Long: `Render the depth-bounded directory graph of a GitHub repository as an
SVG preview using Graphviz.

An output path ending in .dot writes the intermediate DOT text instead.

Examples:
  codemap render golang/go -o go.svg
  codemap render golang/go -o go.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return err
			}
			src, err := c.newGitHubSource(&opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(opts.timeout)*time.Second)
			defer cancel()

			prog := newProgress(c.Logger)
			sp := newSpinner(ctx, fmt.Sprintf("Fetching tree for %s/%s", owner, repo))
			sp.Start()
			root, err := src.Tree(ctx, owner, repo)
			sp.Stop()
			if err != nil {
				return err
			}

			dot := diagram.ToDOT(root)
			if strings.HasSuffix(opts.output, ".dot") {
				if err := writeText(dot, opts.output); err != nil {
					return err
				}
				prog.done("Wrote DOT graph")
				printFile(opts.output)
				return nil
			}

			svg, err := diagram.RenderSVG(ctx, dot)
			if err != nil {
				return err
			}
			out := opts.output
			if out == "" {
				out = repo + ".svg"
			}
			if err := os.WriteFile(out, svg, 0o644); err != nil {
				return err
			}
			prog.done("Rendered SVG preview")
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (<repo>.svg if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached trees")
	cmd.Flags().IntVar(&opts.timeout, "timeout", opts.timeout, "fetch timeout in seconds")

	return cmd
}
