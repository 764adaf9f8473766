// Package tree defines the file hierarchy model shared by all diagram
// emitters and tree sources.
//
// A [Node] is one entry (file or directory) in the hierarchy being
// diagrammed. Trees are built either from the flat recursive listing
// returned by the GitHub git-trees API ([FromEntries]) or from a local
// directory walk ([FromDir]), and are treated as read-only once built:
// nothing downstream mutates a tree.
package tree

import (
	"fmt"
)

// Node kinds.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// Node is one entry in a file hierarchy.
//
// Children order is significant: emitters walk children in the order they
// appear here, which is the order the source produced them.
type Node struct {
	Name     string  `json:"name" bson:"name"`
	Path     string  `json:"path" bson:"path"`
	Kind     string  `json:"type" bson:"type"`
	Size     int64   `json:"size,omitempty" bson:"size,omitempty"`
	Children []*Node `json:"children,omitempty" bson:"children,omitempty"`
}

// IsDir returns true if the node is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDirectory }

// Count returns the total number of nodes in the tree rooted at n,
// including n itself.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Validate checks that the tree rooted at root is well-formed: acyclic,
// with non-empty names, file kinds carrying no children, and node kinds
// limited to file or directory.
//
// Sources are trusted to produce well-formed trees, so emitters do not
// validate their input; Validate exists for boundaries that accept trees
// from outside (the HTTP API, imported JSON). A malformed tree fails fast
// here instead of hanging a recursive walk.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("tree is nil")
	}
	seen := make(map[*Node]bool)
	return validate(root, seen)
}

func validate(n *Node, seen map[*Node]bool) error {
	if seen[n] {
		return fmt.Errorf("tree contains a cycle at %q", n.Path)
	}
	seen[n] = true

	if n.Name == "" {
		return fmt.Errorf("node %q has an empty name", n.Path)
	}
	switch n.Kind {
	case KindDirectory:
	case KindFile:
		if len(n.Children) > 0 {
			return fmt.Errorf("file %q has children", n.Path)
		}
	default:
		return fmt.Errorf("node %q has unknown kind %q", n.Path, n.Kind)
	}

	for _, c := range n.Children {
		if err := validate(c, seen); err != nil {
			return err
		}
	}
	return nil
}
