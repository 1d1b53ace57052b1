// Package page provides page discovery and identity for the audited site tree.
// Identities are normalized so that link-resolution targets and indexed pages
// are always comparable by string equality.
package page

import (
	"path"
	"path/filepath"
	"strings"
)

// IndexFile is the filename that denotes a directory's own page.
const IndexFile = "index.html"

// Record describes one discovered HTML page. Records are created once at
// indexing time and never mutated afterward.
type Record struct {
	// Path is the absolute filesystem path of the page.
	Path string
	// RelPath is the path relative to the audit root, using the OS separator.
	RelPath string
	// ID is the canonical identity, e.g. "/blog/post" or "/" for the home page.
	ID string
}

// ID derives the canonical page identity from a path relative to the audit
// root. A directory index file maps to its parent directory ("/" for the
// root); any other file maps to its path with the extension stripped. The
// result never contains ".html", duplicate slashes, or a trailing slash
// except for the root itself.
func ID(relPath string) string {
	rel := filepath.ToSlash(relPath)

	var id string
	if path.Base(rel) == IndexFile {
		id = "/" + path.Dir(rel)
		if id == "/." {
			id = "/"
		}
	} else {
		id = "/" + strings.TrimSuffix(rel, path.Ext(rel))
	}

	return strings.ReplaceAll(id, "//", "/")
}
