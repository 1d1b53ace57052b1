package page_test

import (
	"testing"

	"github.com/jonesrussell/seoaudit/internal/page"
)

func TestID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Directory index files map to their directory
		{"root index", "index.html", "/"},
		{"nested index", "blog/index.html", "/blog"},
		{"deep index", "blog/2024/post/index.html", "/blog/2024/post"},

		// Plain files map to their extension-free path
		{"root file", "about.html", "/about"},
		{"nested file", "blog/post.html", "/blog/post"},
		{"deep file", "a/b/c/page.html", "/a/b/c/page"},

		// Never a trailing .html, duplicate slash, or trailing slash
		{"file named like index", "blog/indexes.html", "/blog/indexes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := page.ID(tt.input)
			if got != tt.want {
				t.Errorf("ID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestID_Idempotent(t *testing.T) {
	// Link targets and indexed pages must be comparable by equality, so the
	// same relative path always derives the same identity.
	paths := []string{"index.html", "blog/index.html", "blog/post.html"}

	for _, p := range paths {
		first := page.ID(p)
		second := page.ID(p)
		if first != second {
			t.Errorf("ID(%q) not deterministic: %q vs %q", p, first, second)
		}
	}
}

func TestID_EquivalentSpellings(t *testing.T) {
	// A clean URL, its .html spelling, and its directory-index spelling all
	// belong to the same rendered URL family.
	if page.ID("blog/post.html") != "/blog/post" {
		t.Errorf("ID(blog/post.html) = %q", page.ID("blog/post.html"))
	}
	if page.ID("blog/post/index.html") != "/blog/post" {
		t.Errorf("ID(blog/post/index.html) = %q", page.ID("blog/post/index.html"))
	}
}
