package graph

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/seoaudit/internal/ledger"
	"github.com/jonesrussell/seoaudit/internal/page"
	"github.com/jonesrussell/seoaudit/internal/resolver"
)

// softRoutePrefix marks internal redirect/tracking routes. Soft routes are
// excluded from link analysis but must still carry crawler directives.
const softRoutePrefix = "/go/"

// ignorePrefixes lists href prefixes excluded from link analysis.
var ignorePrefixes = []string{softRoutePrefix, "cdn-cgi", "javascript:", "mailto:", "#", "tel:"}

// requiredRelTokens are the relation tokens soft routes and external links
// must carry, checked in this order.
var requiredRelTokens = []string{"nofollow", "noopener", "noreferrer"}

// Deductions applied by the link checks. Dead links are the most damaging
// signal; rel-attribute and URL-style findings are moderate hygiene.
const (
	deadLinkDeduction = 10
	hygieneDeduction  = 2
)

// Builder extracts anchors from pages, classifies each href, and records
// either a graph edge or a ledger finding.
type Builder struct {
	graph    *Graph
	ledger   *ledger.Ledger
	resolver *resolver.Resolver
	baseURL  string // optional, no trailing slash; empty disables detection
}

// NewBuilder creates a builder. baseURL, when non-empty, is the site's base
// URL used to recognize internal links expressed as absolute URLs.
func NewBuilder(g *Graph, led *ledger.Ledger, res *resolver.Resolver, baseURL string) *Builder {
	return &Builder{
		graph:    g,
		ledger:   led,
		resolver: res,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// ProcessPage classifies every anchor with an href on the page, in document
// order.
func (b *Builder) ProcessPage(doc *goquery.Document, rec page.Record) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		rel, _ := s.Attr("rel")
		b.processAnchor(href, rel, rec)
	})
}

// processAnchor routes one href through the classification steps.
func (b *Builder) processAnchor(href, rel string, rec page.Record) {
	// Soft routes are checked for rel tokens before being skipped.
	if strings.HasPrefix(href, softRoutePrefix) {
		b.checkRelTokens("Soft Route link", href, rel, rec)
	}

	for _, prefix := range ignorePrefixes {
		if strings.HasPrefix(href, prefix) {
			return
		}
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		b.processAbsolute(href, rel, rec)
		return
	}

	b.processInternal(href, rec)
}

// processAbsolute handles absolute URLs: links under the configured base URL
// are internal links in disguise and are fed back through internal
// resolution; everything else is recorded for the external probe stage.
func (b *Builder) processAbsolute(href, rel string, rec page.Record) {
	if b.baseURL != "" && strings.HasPrefix(href, b.baseURL) {
		b.ledger.Add(ledger.SeverityWarn,
			fmt.Sprintf("Internal link using absolute URL: %s", href), rec.RelPath, hygieneDeduction)

		path := "/"
		if parsed, err := url.Parse(href); err == nil && parsed.Path != "" {
			path = parsed.Path
		}
		b.processInternal(path, rec)
		return
	}

	b.graph.AddExternal(href, rec.RelPath)
	b.checkRelTokens("External link", href, rel, rec)
}

// processInternal applies URL-style checks, then resolves the href to a
// local file. Resolution success records a graph edge; failure records a
// dead-link finding.
func (b *Builder) processInternal(href string, rec page.Record) {
	if !strings.HasPrefix(href, "/") {
		b.ledger.Add(ledger.SeverityWarn,
			fmt.Sprintf("Relative path used: %s", href), rec.RelPath, hygieneDeduction)
	}

	if strings.HasSuffix(href, ".html") {
		b.ledger.Add(ledger.SeverityWarn,
			fmt.Sprintf("Link includes .html suffix: %s", href), rec.RelPath, hygieneDeduction)
	}

	target, ok := b.resolver.Resolve(href, rec.Path)
	if !ok {
		b.ledger.Add(ledger.SeverityError,
			fmt.Sprintf("Dead Internal Link: %s", href), rec.RelPath, deadLinkDeduction)
		return
	}

	relTarget, err := filepath.Rel(b.resolver.Root(), target)
	if err != nil {
		// Resolved targets always live under the root; treat anything else
		// as unresolved.
		b.ledger.Add(ledger.SeverityError,
			fmt.Sprintf("Dead Internal Link: %s", href), rec.RelPath, deadLinkDeduction)
		return
	}

	b.graph.AddEdge(page.ID(relTarget), rec.ID)
}

// checkRelTokens verifies the href carries every required relation token and
// records one finding naming all missing tokens.
func (b *Builder) checkRelTokens(label, href, rel string, rec page.Record) {
	tokens := strings.Fields(rel)

	var missing []string
	for _, want := range requiredRelTokens {
		if !slices.Contains(tokens, want) {
			missing = append(missing, want)
		}
	}

	if len(missing) > 0 {
		b.ledger.Add(ledger.SeverityWarn,
			fmt.Sprintf("%s missing rel attributes (%s): %s", label, strings.Join(missing, ", "), href),
			rec.RelPath, hygieneDeduction)
	}
}
