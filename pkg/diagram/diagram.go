// Package diagram converts file trees into textual diagram specifications.
//
// Two Mermaid dialects are supported:
//   - mindmap: an indentation-based nested outline, one line per directory,
//     ancestry shown via indent depth
//   - graph: a top-down directed graph, one edge statement per parent→child
//     relation using generated node identifiers
//
// Both emitters are pure functions of (tree, mode): they hold no state
// across calls, never mutate the input tree, and produce byte-identical
// output for identical input. Only directories appear in the output; file
// nodes are skipped at every level. Each dialect bounds recursion depth to
// keep diagrams readable for large repositories (the graph form one level
// stricter than the mindmap form, since edge statements grow faster than
// outline lines).
package diagram

import (
	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/tree"
)

// Mode selects the diagram dialect.
type Mode string

// Supported diagram modes.
const (
	ModeMindmap Mode = "mindmap"
	ModeGraph   Mode = "graph"
)

// ValidModes is the set of supported diagram modes.
var ValidModes = map[Mode]bool{
	ModeMindmap: true,
	ModeGraph:   true,
}

// ValidateMode checks that a mode is supported.
func ValidateMode(m Mode) error {
	if !ValidModes[m] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be 'mindmap' or 'graph')", string(m))
	}
	return nil
}

// Generate produces the diagram text for root in the given mode.
//
// The root node is always rendered as the labeled top-level node regardless
// of its kind. The input tree is assumed well-formed (acyclic, produced by
// a trusted source); boundaries accepting untrusted trees should run
// [tree.Validate] first.
func Generate(root *tree.Node, mode Mode) (string, error) {
	switch mode {
	case ModeMindmap:
		return Mindmap(root), nil
	case ModeGraph:
		return Graph(root), nil
	default:
		return "", ValidateMode(mode)
	}
}
