package page_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seoaudit/internal/page"
)

func writePage(t *testing.T, root string, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("<html></html>"), 0o644))
}

func TestIndex(t *testing.T) {
	root := t.TempDir()

	writePage(t, root, "index.html")
	writePage(t, root, "about.html")
	writePage(t, root, "blog/index.html")
	writePage(t, root, "blog/first-post.html")

	// Non-HTML files are skipped.
	writePage(t, root, "styles.css")
	writePage(t, root, "blog/feed.xml")

	// Tooling directories are pruned entirely.
	writePage(t, root, ".git/objects/page.html")
	writePage(t, root, "node_modules/pkg/index.html")
	writePage(t, root, "__pycache__/cached.html")
	writePage(t, root, ".vscode/settings.html")
	writePage(t, root, ".idea/workspace.html")

	// Verification and error pages are not audited.
	writePage(t, root, "google1234abcd.html")
	writePage(t, root, "404.html")

	records, err := page.Index(root)
	require.NoError(t, err)

	ids := make(map[string]string, len(records))
	for _, rec := range records {
		ids[rec.ID] = rec.RelPath
	}

	require.Len(t, records, 4)
	require.Contains(t, ids, "/")
	require.Contains(t, ids, "/about")
	require.Contains(t, ids, "/blog")
	require.Contains(t, ids, "/blog/first-post")
}

func TestIndex_RecordPaths(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "blog/post.html")

	records, err := page.Index(root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.Equal(t, filepath.Join(root, "blog", "post.html"), rec.Path)
	require.Equal(t, filepath.Join("blog", "post.html"), rec.RelPath)
	require.Equal(t, "/blog/post", rec.ID)
}

func TestIndex_Empty(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "readme.txt")

	_, err := page.Index(root)
	require.Error(t, err)
	require.True(t, errors.Is(err, page.ErrNoPages))
}

func TestIndex_MissingRoot(t *testing.T) {
	_, err := page.Index(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
