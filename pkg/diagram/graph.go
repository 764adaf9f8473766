package diagram

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/codemap/pkg/tree"
)

// graphMaxDepth bounds graph recursion one level stricter than the mindmap
// form: edge statements grow faster than outline lines.
const graphMaxDepth = 2

// rootToken is the reserved identifier for the root node. Child identifiers
// come from the per-emission allocator and never collide with it.
const rootToken = "root"

// rootStyle visually distinguishes the root node from the directory boxes.
const rootStyle = "fill:#e8f4fd,stroke:#2383c4,stroke-width:2px"

// Graph emits the Mermaid top-down graph form of the tree.
//
// The root is rendered as a circle with a style statement; every directory
// below it becomes a directed edge statement from its parent's identifier.
// Files are skipped.
func Graph(root *tree.Node) string {
	var buf bytes.Buffer
	buf.WriteString("graph TD\n")
	fmt.Fprintf(&buf, "    %s((%s))\n", rootToken, root.Name)
	fmt.Fprintf(&buf, "    style %s %s\n", rootToken, rootStyle)

	ids := &idAllocator{}
	writeGraphLevel(&buf, ids, root, rootToken, 0)
	return buf.String()
}

// idAllocator hands out unique node identifiers within one emission.
// The counter lives and dies with a single Graph call; concurrent
// emissions each get their own.
type idAllocator struct {
	n int
}

// next increments the counter and returns a fresh "node<N>" token.
func (a *idAllocator) next() string {
	a.n++
	return fmt.Sprintf("node%d", a.n)
}

func writeGraphLevel(buf *bytes.Buffer, ids *idAllocator, parent *tree.Node, parentToken string, level int) {
	if level > graphMaxDepth {
		return
	}
	for _, child := range parent.Children {
		if !child.IsDir() {
			continue
		}
		id := ids.next()
		fmt.Fprintf(buf, "    %s --> %s[%s]\n", parentToken, id, child.Name)
		writeGraphLevel(buf, ids, child, id, level+1)
	}
}
