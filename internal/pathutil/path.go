// Package pathutil provides path manipulation for slash-separated archive paths.
package pathutil

import (
	"iter"
	"strings"
)

// Join prepends dir to name unless dir is the archive root.
func Join(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

// DirPrefix converts a path to its directory prefix form.
// For ".", returns "" (empty prefix matches all).
// For other paths, appends "/" to match children.
func DirPrefix(name string) string {
	if name == "." {
		return ""
	}
	return name + "/"
}

// Child extracts the immediate child name from a full path given a prefix.
// Returns the child name and whether more path components follow it.
// If path doesn't have the prefix, behavior is undefined.
func Child(path, prefix string) (name string, isSubDir bool) {
	relPath := strings.TrimPrefix(path, prefix)
	if idx := strings.Index(relPath, "/"); idx >= 0 {
		return relPath[:idx], true
	}
	return relPath, false
}

// Parents yields the proper ancestors of a slash-separated path, nearest
// the root first: "a/b/c" yields "a", then "a/b".
func Parents(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(path); i++ {
			if path[i] == '/' && !yield(path[:i]) {
				return
			}
		}
	}
}
