// Package graph builds the internal link graph and the external link
// records from the anchors found during page analysis. Graph construction
// is single-threaded; only the ledger it writes findings to is shared with
// the concurrent probe stage.
package graph

import (
	"sort"

	"github.com/jonesrussell/seoaudit/internal/page"
)

// Graph accumulates link edges and external references. Edges map a target
// page identity to the ordered identities of its referencing pages; every
// traversal of an anchor appends one entry, so multiplicity is preserved.
// Dead links never enter the graph, they only produce ledger findings.
type Graph struct {
	edges     map[string][]string // target ID -> source IDs
	edgeOrder []string            // target IDs in first-seen order
	externals map[string][]string // raw URL -> source relative paths
	extOrder  []string            // URLs in first-seen order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		edges:     make(map[string][]string),
		externals: make(map[string][]string),
	}
}

// AddEdge records one inbound reference from sourceID to targetID.
func (g *Graph) AddEdge(targetID, sourceID string) {
	if _, seen := g.edges[targetID]; !seen {
		g.edgeOrder = append(g.edgeOrder, targetID)
	}
	g.edges[targetID] = append(g.edges[targetID], sourceID)
}

// AddExternal records one reference to an external URL from the page at
// sourceRel.
func (g *Graph) AddExternal(url, sourceRel string) {
	if _, seen := g.externals[url]; !seen {
		g.extOrder = append(g.extOrder, url)
	}
	g.externals[url] = append(g.externals[url], sourceRel)
}

// Inbound returns the ordered source identities referencing targetID.
func (g *Graph) Inbound(targetID string) []string {
	return g.edges[targetID]
}

// HasTarget reports whether any edge points at the given identity.
func (g *Graph) HasTarget(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// ExternalURLs returns the distinct external URLs in first-seen order.
func (g *Graph) ExternalURLs() []string {
	return g.extOrder
}

// ExternalSources returns the ordered referencing pages for an external URL.
func (g *Graph) ExternalSources(url string) []string {
	return g.externals[url]
}

// Orphans returns the identities of pages with zero inbound edges, in
// discovery order. The home page is always excluded, even when unlinked.
func (g *Graph) Orphans(records []page.Record) []string {
	var orphans []string
	for _, rec := range records {
		if rec.ID == "/" {
			continue
		}
		if !g.HasTarget(rec.ID) {
			orphans = append(orphans, rec.ID)
		}
	}
	return orphans
}

// TargetRank pairs a page identity with its inbound reference count.
type TargetRank struct {
	ID      string
	Inbound int
}

// TopTargets returns up to n targets ranked by inbound count, descending,
// with ties broken by first-seen order.
func (g *Graph) TopTargets(n int) []TargetRank {
	ranks := make([]TargetRank, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		ranks = append(ranks, TargetRank{ID: id, Inbound: len(g.edges[id])})
	}

	// Stable sort keeps the first-seen order among equal counts.
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Inbound > ranks[j].Inbound
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}
