package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seoaudit/internal/graph"
	"github.com/jonesrussell/seoaudit/internal/page"
)

func TestGraph_Edges(t *testing.T) {
	g := graph.New()

	g.AddEdge("/about", "/")
	g.AddEdge("/about", "/blog")
	g.AddEdge("/about", "/blog") // repeated anchors count twice

	require.True(t, g.HasTarget("/about"))
	require.False(t, g.HasTarget("/contact"))
	require.Equal(t, []string{"/", "/blog", "/blog"}, g.Inbound("/about"))
}

func TestGraph_Externals(t *testing.T) {
	g := graph.New()

	g.AddExternal("https://example.com/a", "index.html")
	g.AddExternal("https://example.com/b", "index.html")
	g.AddExternal("https://example.com/a", "blog/post.html")

	require.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, g.ExternalURLs())
	require.Equal(t, []string{"index.html", "blog/post.html"}, g.ExternalSources("https://example.com/a"))
}

func TestGraph_Orphans(t *testing.T) {
	g := graph.New()
	g.AddEdge("/about", "/")

	records := []page.Record{
		{ID: "/"},
		{ID: "/about"},
		{ID: "/lost"},
		{ID: "/also-lost"},
	}

	// Home is never an orphan even without inbound edges; the remaining
	// unlinked pages surface in discovery order.
	require.Equal(t, []string{"/lost", "/also-lost"}, g.Orphans(records))
}

func TestGraph_TopTargets(t *testing.T) {
	g := graph.New()

	g.AddEdge("/a", "/")
	g.AddEdge("/b", "/")
	g.AddEdge("/b", "/a")
	g.AddEdge("/c", "/")
	g.AddEdge("/c", "/a")
	g.AddEdge("/c", "/b")

	ranks := g.TopTargets(2)
	require.Len(t, ranks, 2)
	require.Equal(t, graph.TargetRank{ID: "/c", Inbound: 3}, ranks[0])
	require.Equal(t, graph.TargetRank{ID: "/b", Inbound: 2}, ranks[1])
}

func TestGraph_TopTargetsTies(t *testing.T) {
	g := graph.New()

	g.AddEdge("/first", "/")
	g.AddEdge("/second", "/")
	g.AddEdge("/third", "/")

	// Equal counts keep first-seen order.
	ranks := g.TopTargets(10)
	require.Equal(t, []graph.TargetRank{
		{ID: "/first", Inbound: 1},
		{ID: "/second", Inbound: 1},
		{ID: "/third", Inbound: 1},
	}, ranks)
}
