package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/seoaudit/internal/resolver"
)

func buildSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"index.html",
		"about.html",
		"blog/index.html",
		"blog/first-post.html",
		"docs/setup.html",
		"docs/setup/index.html",
	}
	for _, rel := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("<html></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func TestResolve(t *testing.T) {
	root := buildSite(t)
	r := resolver.New(root)
	home := filepath.Join(root, "index.html")
	blogIndex := filepath.Join(root, "blog", "index.html")

	tests := []struct {
		name   string
		href   string
		source string
		want   string
		ok     bool
	}{
		// Root-relative hrefs resolve against the site root no matter
		// which page links them.
		{"root", "/", blogIndex, filepath.Join(root, "index.html"), true},
		{"clean url", "/about", blogIndex, filepath.Join(root, "about.html"), true},
		{"directory url", "/blog", home, filepath.Join(root, "blog", "index.html"), true},
		{"nested clean url", "/blog/first-post", home, filepath.Join(root, "blog", "first-post.html"), true},

		// Exact file wins over the ".html" and index candidates.
		{"exact file", "/docs/setup.html", home, filepath.Join(root, "docs", "setup.html"), true},
		{"exact before index", "/docs/setup", home, filepath.Join(root, "docs", "setup.html"), true},

		// Non-root-relative hrefs resolve from the referencing page's
		// directory.
		{"sibling", "first-post", blogIndex, filepath.Join(root, "blog", "first-post.html"), true},
		{"parent traversal", "../about", blogIndex, filepath.Join(root, "about.html"), true},

		// Fragments and query strings never affect resolution.
		{"fragment", "/about#team", home, filepath.Join(root, "about.html"), true},
		{"query", "/about?ref=nav", home, filepath.Join(root, "about.html"), true},
		{"fragment only", "#top", home, "", false},

		// Misses.
		{"missing page", "/contact", home, "", false},
		{"missing nested", "/blog/second-post", home, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.href, tt.source)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.href, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestResolve_IndexFallback(t *testing.T) {
	root := buildSite(t)
	r := resolver.New(root)
	home := filepath.Join(root, "index.html")

	// "/blog" has no blog file and no blog.html, so resolution falls
	// through to blog/index.html.
	got, ok := r.Resolve("/blog", home)
	if !ok {
		t.Fatal("expected /blog to resolve")
	}
	want := filepath.Join(root, "blog", "index.html")
	if got != want {
		t.Errorf("Resolve(/blog) = %q, want %q", got, want)
	}
}
