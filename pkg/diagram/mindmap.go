package diagram

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/codemap/pkg/tree"
)

// mindmapMaxDepth bounds mindmap recursion: a directory's children are not
// rendered once the walk is deeper than this many levels below the root.
const mindmapMaxDepth = 3

// Mindmap emits the Mermaid mindmap form of the tree.
//
// The root is rendered as a double-circle node; every directory below it
// becomes one line indented four spaces per level. Files are skipped.
func Mindmap(root *tree.Node) string {
	var buf bytes.Buffer
	buf.WriteString("mindmap\n")
	fmt.Fprintf(&buf, "  root((%s))\n", root.Name)
	writeMindmapLevel(&buf, root, 0)
	return buf.String()
}

func writeMindmapLevel(buf *bytes.Buffer, parent *tree.Node, level int) {
	if level > mindmapMaxDepth {
		return
	}
	for _, child := range parent.Children {
		if !child.IsDir() {
			continue
		}
		buf.WriteString(strings.Repeat("    ", level+1))
		buf.WriteString(child.Name)
		buf.WriteByte('\n')
		writeMindmapLevel(buf, child, level+1)
	}
}
