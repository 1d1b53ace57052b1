// Package resolver maps raw href strings onto files in the audited tree.
// A miss is an expected outcome that drives dead-link detection, so the
// resolver reports it as a boolean rather than an error.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonesrussell/seoaudit/internal/page"
)

// Resolver resolves hrefs against a site root.
type Resolver struct {
	root string
}

// New creates a resolver for the tree rooted at root. root must be an
// absolute path.
func New(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the tree root the resolver operates on.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps an href, as written in the page at sourcePath, to a file in
// the tree. Fragment and query suffixes are stripped first. A root-relative
// href resolves against the site root; anything else resolves against the
// referencing page's directory. Candidates are tried in order: the exact
// file, the file with ".html" appended, then the directory's index file.
// The boolean reports whether any candidate matched.
func (r *Resolver) Resolve(href, sourcePath string) (string, bool) {
	href = stripSuffixes(href)
	if href == "" {
		return "", false
	}

	var base, remainder string
	if strings.HasPrefix(href, "/") {
		base = r.root
		remainder = strings.TrimLeft(href, "/")
	} else {
		base = filepath.Dir(sourcePath)
		remainder = href
	}

	candidate := filepath.Join(base, filepath.FromSlash(remainder))

	if isFile(candidate) {
		return candidate, true
	}

	if withExt := candidate + ".html"; isFile(withExt) {
		return withExt, true
	}

	if isDir(candidate) {
		if index := filepath.Join(candidate, page.IndexFile); isFile(index) {
			return index, true
		}
	}

	return "", false
}

// stripSuffixes removes the fragment and query portion of an href, keeping
// only the path to resolve.
func stripSuffixes(href string) string {
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		return href[:i]
	}
	return href
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
