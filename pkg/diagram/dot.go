package diagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/codemap/pkg/tree"
)

// ToDOT converts a tree to Graphviz DOT format for local SVG preview of
// the directory structure. It walks the same directory-only, depth-bounded
// graph as [Graph], but uses repository paths as node identifiers so the
// output is stable under renames of sibling order.
func ToDOT(root *tree.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph codemap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=\"#e8f4fd\"];\n", root.Path, root.Name)
	writeDOTLevel(&buf, root, 0)

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTLevel(buf *bytes.Buffer, parent *tree.Node, level int) {
	if level > graphMaxDepth {
		return
	}
	for _, child := range parent.Children {
		if !child.IsDir() {
			continue
		}
		fmt.Fprintf(buf, "  %q [label=%q];\n", child.Path, child.Name)
		fmt.Fprintf(buf, "  %q -> %q;\n", parent.Path, child.Path)
		writeDOTLevel(buf, child, level+1)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
