// Package audit orchestrates a full site audit run: configuration, page
// indexing, sequential per-page analysis and graph construction, concurrent
// external probing, and orphan detection. Findings accumulate on a single
// ledger and the run always reaches a final result unless no pages exist.
package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/jonesrussell/seoaudit/internal/analyzer"
	"github.com/jonesrussell/seoaudit/internal/graph"
	"github.com/jonesrussell/seoaudit/internal/ledger"
	"github.com/jonesrussell/seoaudit/internal/logger"
	"github.com/jonesrussell/seoaudit/internal/page"
	"github.com/jonesrussell/seoaudit/internal/prober"
	"github.com/jonesrussell/seoaudit/internal/resolver"
)

// orphanDeduction is applied once per orphan page.
const orphanDeduction = 5

// Options configures a single audit run.
type Options struct {
	// Root is the directory tree to audit.
	Root string
	// BaseURL overrides home-page base URL detection when non-empty.
	BaseURL string
	// ProbeWorkers is the external-probe pool width; zero uses the default.
	ProbeWorkers int
	// ProbeTimeout is the per-attempt probe timeout; zero uses the default.
	ProbeTimeout time.Duration
	// SkipExternal disables the external-liveness stage.
	SkipExternal bool
}

// Result is the outcome of a completed run, consumed by the report renderer.
type Result struct {
	RunID   string
	Root    string
	BaseURL string
	Pages   int
	Ledger  *ledger.Ledger
	Graph   *graph.Graph
}

// Runner executes audit runs.
type Runner struct {
	opts Options
	log  logger.Interface
}

// NewRunner creates a runner for the given options.
func NewRunner(opts Options, log logger.Interface) *Runner {
	return &Runner{opts: opts, log: log}
}

// Run performs one audit. It returns page.ErrNoPages when the root contains
// nothing auditable; every other per-page failure is contained and logged so
// a single malformed page cannot hide findings about the rest of the site.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	log := r.log.With("run_id", runID)

	root, err := filepath.Abs(r.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	baseURL := r.opts.BaseURL
	if baseURL == "" {
		baseURL = detectBaseURL(root, log)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	records, err := page.Index(root)
	if err != nil {
		return nil, err
	}

	log.Info("starting analysis", "root", root, "pages", len(records))

	led := ledger.New()
	g := graph.New()
	an := analyzer.New(led)
	builder := graph.NewBuilder(g, led, resolver.New(root), baseURL)

	for _, rec := range records {
		if pageErr := processPage(rec, an, builder); pageErr != nil {
			log.Error("failed to analyze page", "page", rec.RelPath, "error", pageErr)
		}
	}

	if !r.opts.SkipExternal {
		p := prober.New(prober.Config{
			Workers: r.opts.ProbeWorkers,
			Timeout: r.opts.ProbeTimeout,
		}, led, log)
		p.Run(ctx, g)
	}

	for _, id := range g.Orphans(records) {
		led.Add(ledger.SeverityWarn,
			fmt.Sprintf("Orphan page (no incoming links): %s", id), "Structure", orphanDeduction)
	}

	log.Info("audit complete", "issues", led.Len(), "score", led.Score())

	return &Result{
		RunID:   runID,
		Root:    root,
		BaseURL: baseURL,
		Pages:   len(records),
		Ledger:  led,
		Graph:   g,
	}, nil
}

// processPage reads and parses one page, then runs the structural checks and
// the link classification over it.
func processPage(rec page.Record, an *analyzer.Analyzer, builder *graph.Builder) error {
	f, err := os.Open(rec.Path)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	an.Analyze(doc, rec)
	builder.ProcessPage(doc, rec)

	return nil
}

// detectBaseURL reads the site's base URL from the home page, preferring the
// canonical link over the og:url meta tag. Detection failures downgrade the
// run (absolute internal links go unrecognized) but never abort it.
func detectBaseURL(root string, log logger.Interface) string {
	homePath := filepath.Join(root, page.IndexFile)

	f, err := os.Open(homePath)
	if err != nil {
		log.Warn("home page not found, base URL detection skipped", "path", homePath)
		return ""
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		log.Error("failed to parse home page", "path", homePath, "error", err)
		return ""
	}

	base, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	if base == "" {
		base, _ = doc.Find(`meta[property="og:url"]`).Attr("content")
	}

	if base == "" {
		log.Warn("could not detect base URL from home page (canonical or og:url)")
	} else {
		base = strings.TrimRight(base, "/")
		log.Info("base URL detected", "base_url", base)
	}

	if keywords, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok && keywords != "" {
		log.Info("keywords detected", "keywords", keywords)
	}

	return base
}
