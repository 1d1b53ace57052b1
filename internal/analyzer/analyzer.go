// Package analyzer performs per-page structural checks that are independent
// of the link graph: heading presence, structured data, and breadcrumb
// navigation. Checks never suppress one another.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/seoaudit/internal/ledger"
	"github.com/jonesrussell/seoaudit/internal/page"
)

// Deductions applied by the structural checks. Multiple-H1 and breadcrumb
// findings are informational and deduct nothing.
const (
	missingH1Deduction     = 5
	missingSchemaDeduction = 2
)

// schemaSelector matches structured-data script blocks.
const schemaSelector = `script[type="application/ld+json"]`

// Analyzer runs structural checks and records findings on the ledger.
type Analyzer struct {
	ledger *ledger.Ledger
}

// New creates an analyzer writing to the given ledger.
func New(led *ledger.Ledger) *Analyzer {
	return &Analyzer{ledger: led}
}

// Analyze runs all structural checks for a single parsed page.
func (a *Analyzer) Analyze(doc *goquery.Document, rec page.Record) {
	a.checkHeadings(doc, rec)
	a.checkSchema(doc, rec)

	// The home page conventionally carries no breadcrumb trail.
	if rec.ID != "/" {
		a.checkBreadcrumb(doc, rec)
	}
}

// checkHeadings flags pages with no h1 element, or more than one.
func (a *Analyzer) checkHeadings(doc *goquery.Document, rec page.Record) {
	count := doc.Find("h1").Length()
	switch {
	case count == 0:
		a.ledger.Add(ledger.SeverityError, "Missing H1 tag", rec.RelPath, missingH1Deduction)
	case count > 1:
		a.ledger.Add(ledger.SeverityWarn,
			fmt.Sprintf("Multiple H1 tags found (%d)", count), rec.RelPath, 0)
	}
}

// checkSchema flags pages without an application/ld+json script block.
func (a *Analyzer) checkSchema(doc *goquery.Document, rec page.Record) {
	if doc.Find(schemaSelector).Length() == 0 {
		a.ledger.Add(ledger.SeverityWarn,
			"Missing Schema (application/ld+json)", rec.RelPath, missingSchemaDeduction)
	}
}

// checkBreadcrumb flags pages without an accessible breadcrumb landmark.
func (a *Analyzer) checkBreadcrumb(doc *goquery.Document, rec page.Record) {
	if !HasBreadcrumbMarker(doc) {
		a.ledger.Add(ledger.SeverityWarn, "Missing Breadcrumb navigation", rec.RelPath, 0)
	}
}

// HasBreadcrumbMarker reports whether the document carries a breadcrumb
// landmark: an element with aria-label="breadcrumb", or any element with a
// class token containing "breadcrumb".
func HasBreadcrumbMarker(doc *goquery.Document) bool {
	if doc.Find(`[aria-label="breadcrumb"]`).Length() > 0 {
		return true
	}

	found := false
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		for _, token := range strings.Fields(class) {
			if strings.Contains(token, "breadcrumb") {
				found = true
				return false
			}
		}
		return true
	})

	return found
}
