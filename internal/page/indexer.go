package page

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNoPages is returned when the audit root contains no auditable HTML
// files. The condition is fatal to a run but is reported, not panicked.
var ErrNoPages = errors.New("no HTML pages found")

// ignoredDirs are directory names that are pruned before descending, so
// their subtrees are never visited.
var ignoredDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
	".vscode":      {},
	".idea":        {},
}

// ignoredNameParts excludes files whose name contains any of these
// substrings (generated verification files and the error page).
var ignoredNameParts = []string{"google", "404.html"}

// Index walks the tree rooted at root once and returns a Record for every
// auditable HTML file, in walk order. root must be an absolute path.
func Index(root string) ([]Record, error) {
	var records []Record

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if _, ignored := ignoredDirs[d.Name()]; ignored {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".html") || ignoredName(d.Name()) {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}

		records = append(records, Record{
			Path:    p,
			RelPath: rel,
			ID:      ID(rel),
		})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	if len(records) == 0 {
		return nil, ErrNoPages
	}

	return records, nil
}

// ignoredName reports whether the filename matches an ignore rule.
func ignoredName(name string) bool {
	for _, part := range ignoredNameParts {
		if strings.Contains(name, part) {
			return true
		}
	}
	return false
}
