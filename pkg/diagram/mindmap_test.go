package diagram

import (
	"strings"
	"testing"

	"github.com/matzehuels/codemap/pkg/tree"
)

func dir(name, path string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Name: name, Path: path, Kind: tree.KindDirectory, Children: children}
}

func file(name, path string) *tree.Node {
	return &tree.Node{Name: name, Path: path, Kind: tree.KindFile}
}

// chain builds root -> a -> b -> c -> d -> e, one directory per level.
func chain() *tree.Node {
	return dir("repo", ".",
		dir("a", "a",
			dir("b", "a/b",
				dir("c", "a/b/c",
					dir("d", "a/b/c/d",
						dir("e", "a/b/c/d/e"))))))
}

func TestMindmap(t *testing.T) {
	root := dir("repo", ".",
		dir("src", "src",
			dir("utils", "src/utils")),
		file("readme.md", "readme.md"),
	)

	got := Mindmap(root)
	want := "mindmap\n" +
		"  root((repo))\n" +
		"    src\n" +
		"        utils\n"
	if got != want {
		t.Errorf("Mindmap output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "readme.md") {
		t.Error("file node should not appear in output")
	}
}

func TestMindmapDeterministic(t *testing.T) {
	root := chain()
	if Mindmap(root) != Mindmap(root) {
		t.Error("repeated emissions should be identical")
	}
}

func TestMindmapDepthBound(t *testing.T) {
	got := Mindmap(chain())

	// Levels 0..3 of the walk emit a through d; e is one level too deep.
	for _, name := range []string{"a", "b", "c", "d"} {
		if !strings.Contains(got, name+"\n") {
			t.Errorf("directory %q should be emitted:\n%s", name, got)
		}
	}
	if strings.Contains(got, "e\n") {
		t.Errorf("directory e is beyond the depth bound:\n%s", got)
	}
}

func TestMindmapEmptyTree(t *testing.T) {
	got := Mindmap(dir("empty", "."))
	want := "mindmap\n  root((empty))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMindmapDoesNotMutate(t *testing.T) {
	root := dir("repo", ".", dir("src", "src"), file("main.go", "main.go"))
	before := root.Count()
	_ = Mindmap(root)
	if root.Count() != before {
		t.Error("emission must not mutate the input tree")
	}
}
