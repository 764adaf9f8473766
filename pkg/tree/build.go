package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one row of a flat recursive repository listing, as returned by
// the GitHub git-trees API after kind normalization ("blob" → file,
// "tree" → directory).
type Entry struct {
	Path string
	Kind string
	Size int64
}

// skipDirs are well-known build and cache directories excluded from local
// walks. Hidden entries (leading dot) are excluded separately.
var skipDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"venv":         true,
	"env":          true,
	"target":       true,
	"vendor":       true,
}

// FromEntries builds a tree from a flat listing of slash-separated paths.
//
// Entries are processed in listing order, so children keep the order the
// API returned them. Intermediate directories missing from the listing
// (the git-trees API normally includes them, but truncated listings may
// not) are created on demand.
func FromEntries(rootName string, entries []Entry) *Node {
	root := &Node{Name: rootName, Path: ".", Kind: KindDirectory}
	dirs := map[string]*Node{"": root}

	for _, e := range entries {
		if e.Path == "" {
			continue
		}
		parent := ensureDir(dirs, parentPath(e.Path))
		if e.Kind == KindDirectory {
			if _, ok := dirs[e.Path]; ok {
				continue // already created as an intermediate
			}
		}
		n := &Node{
			Name: baseName(e.Path),
			Path: e.Path,
			Kind: e.Kind,
			Size: e.Size,
		}
		parent.Children = append(parent.Children, n)
		if e.Kind == KindDirectory {
			dirs[e.Path] = n
		}
	}
	return root
}

// ensureDir returns the directory node for path, creating it (and any
// missing ancestors) as children of their parents.
func ensureDir(dirs map[string]*Node, path string) *Node {
	if n, ok := dirs[path]; ok {
		return n
	}
	parent := ensureDir(dirs, parentPath(path))
	n := &Node{Name: baseName(path), Path: path, Kind: KindDirectory}
	parent.Children = append(parent.Children, n)
	dirs[path] = n
	return n
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// FromDir builds a tree by walking a local directory.
//
// Within each directory, subdirectories are listed before files, each
// group sorted case-insensitively by name. Hidden entries and well-known
// build/cache directories are skipped. Unreadable directories contribute
// an empty directory node rather than failing the whole walk.
func FromDir(path string) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		name = "root"
	}
	root := &Node{Name: name, Path: ".", Kind: KindDirectory}
	walkDir(root, abs, abs)
	return root, nil
}

func walkDir(parent *Node, dir, rootDir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return // unreadable directory stays empty
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		rel, err := filepath.Rel(rootDir, full)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if e.IsDir() {
			if skipDirs[name] {
				continue
			}
			child := &Node{Name: name, Path: rel, Kind: KindDirectory}
			parent.Children = append(parent.Children, child)
			walkDir(child, full, rootDir)
			continue
		}

		var size int64
		if fi, err := e.Info(); err == nil {
			size = fi.Size()
		}
		parent.Children = append(parent.Children, &Node{
			Name: name,
			Path: rel,
			Kind: KindFile,
			Size: size,
		})
	}
}
