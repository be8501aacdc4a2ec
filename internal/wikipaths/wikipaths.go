// Package wikipaths provides the repo-relative path canonicalization and
// slug/breadcrumb transforms shared by C4 (signatures), C5 (page paths), and
// C7 (the live wiki layout).
package wikipaths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a repo-relative, forward-slashed
// path. Symlinks are resolved when the target exists; a not-yet-existing
// path is canonicalized as-is.
func Canonicalize(absolutePath, repoRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = repoRoot
		} else {
			return "", err
		}
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Normalize converts backslashes to forward slashes for an already-relative
// path.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// RootSlug is the literal slug for the repository root directory, per the
// Glossary: "the root directory's slug is literally root".
const RootSlug = "root"

// Slugify turns a repo-relative directory or file path into the wiki's
// path-derived identifier: "/" becomes "--", and the empty (root) path
// becomes the literal "root".
func Slugify(relPath string) string {
	relPath = Normalize(relPath)
	relPath = strings.TrimPrefix(relPath, "/")
	if relPath == "" || relPath == "." {
		return RootSlug
	}
	return strings.ReplaceAll(relPath, "/", "--")
}

// Depth returns a directory's depth for the depth-first processing order
//: the number of path separators, with the repository root
// at depth -1.
func Depth(dirPath string) int {
	dirPath = Normalize(dirPath)
	if dirPath == "" || dirPath == "." {
		return -1
	}
	return strings.Count(dirPath, "/")
}

// Parent returns the parent directory of a repo-relative path ("" for a
// path already at root).
func Parent(relPath string) string {
	relPath = Normalize(strings.TrimSuffix(relPath, "/"))
	idx := strings.LastIndex(relPath, "/")
	if idx < 0 {
		return ""
	}
	return relPath[:idx]
}

// Breadcrumb builds the ordered list of ancestor directory paths from the
// repository root down to dirPath inclusive, e.g. for "src/api/v1" it
// returns ["", "src", "src/api", "src/api/v1"]. Callers needing the
// truncated-with-"…" presentation for depth > 4 do that
// rendering themselves; this only computes the raw chain.
func Breadcrumb(dirPath string) []string {
	dirPath = Normalize(dirPath)
	if dirPath == "" || dirPath == "." {
		return []string{""}
	}
	parts := strings.Split(dirPath, "/")
	chain := make([]string, 0, len(parts)+1)
	chain = append(chain, "")
	acc := ""
	for _, p := range parts {
		if acc == "" {
			acc = p
		} else {
			acc = acc + "/" + p
		}
		chain = append(chain, acc)
	}
	return chain
}

// TruncateBreadcrumb collapses the middle of a breadcrumb chain once it
// holds more than maxAncestors ancestors, always keeping the root link, the
// first maxAncestors ancestors, and the current directory.
func TruncateBreadcrumb(chain []string, maxAncestors int) []string {
	// chain includes root + ancestors + current; "ancestors" excludes root
	// and current.
	if len(chain) <= maxAncestors+2 {
		return chain
	}
	out := make([]string, 0, maxAncestors+3)
	out = append(out, chain[0])            // root
	out = append(out, chain[1:maxAncestors+1]...) // first maxAncestors ancestors after root
	out = append(out, "…")
	out = append(out, chain[len(chain)-1]) // current
	return out
}
