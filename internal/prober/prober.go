// Package prober checks external link liveness with a bounded pool of
// concurrent workers. Probing is read-only and idempotent: a non-success
// outcome produces exactly one ledger finding per URL and nothing is cached
// between runs.
package prober

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonesrussell/seoaudit/internal/graph"
	"github.com/jonesrussell/seoaudit/internal/ledger"
	"github.com/jonesrussell/seoaudit/internal/logger"
)

// Pool defaults per the audit contract.
const (
	DefaultWorkers = 10
	DefaultTimeout = 5 * time.Second
)

// brokenLinkDeduction is applied once per failing URL.
const brokenLinkDeduction = 5

// maxNamedSources caps how many referencing pages a finding names.
const maxNamedSources = 3

// Probe requests impersonate a desktop browser; several endpoints reject
// obvious automation with 403s.
const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/apng,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
)

// allowlist contains URL substrings of known-good endpoints that reliably
// reject automated probes; matches short-circuit to success.
var allowlist = []string{"help.x.com", "twitter.com", "x.com"}

// Config controls pool width and per-attempt timeout.
type Config struct {
	Workers int
	Timeout time.Duration
}

// Prober performs the external-liveness stage of an audit.
type Prober struct {
	client  *http.Client
	ledger  *ledger.Ledger
	log     logger.Interface
	workers int
}

// New creates a prober writing findings to the given ledger. Zero config
// values fall back to the defaults.
func New(cfg Config, led *ledger.Ledger, log logger.Interface) *Prober {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Prober{
		// The client follows redirects; the timeout bounds each attempt.
		client:  &http.Client{Timeout: cfg.Timeout},
		ledger:  led,
		log:     log,
		workers: cfg.Workers,
	}
}

// Run probes every distinct external URL recorded on the graph. It blocks
// until all probes complete; a slow URL delays completion by at most its own
// timeout since workers proceed independently.
func (p *Prober) Run(ctx context.Context, g *graph.Graph) {
	urls := g.ExternalURLs()
	if len(urls) == 0 {
		return
	}

	p.log.Info("checking external links", "count", len(urls), "workers", p.workers)

	jobs := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if cause, ok := p.check(ctx, u); !ok {
					p.record(u, cause, g)
				}
			}
		}()
	}

	for _, u := range urls {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
}

// check probes a single URL. It attempts a lightweight HEAD first and falls
// back to a full GET when the target rejects the method. The returned cause
// is an HTTP status or a transport error; both normalize into the same
// finding shape.
func (p *Prober) check(ctx context.Context, rawURL string) (cause string, ok bool) {
	if allowlisted(rawURL) {
		return "", true
	}

	status, err := p.attempt(ctx, http.MethodHead, rawURL)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusForbidden) {
		status, err = p.attempt(ctx, http.MethodGet, rawURL)
	}

	if err != nil {
		return err.Error(), false
	}
	if status >= http.StatusBadRequest {
		return strconv.Itoa(status), false
	}
	return "", true
}

// attempt issues one request and returns the response status.
func (p *Prober) attempt(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, http.NoBody)
	if err != nil {
		return 0, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// record writes the finding for a failed URL, naming up to the first
// maxNamedSources referencing pages.
func (p *Prober) record(rawURL, cause string, g *graph.Graph) {
	sources := g.ExternalSources(rawURL)

	named := sources
	if len(named) > maxNamedSources {
		named = named[:maxNamedSources]
	}

	list := strings.Join(named, ", ")
	if len(sources) > maxNamedSources {
		list += "..."
	}

	p.ledger.Add(ledger.SeverityError,
		fmt.Sprintf("Broken External Link (%s): %s (found in %s)", cause, rawURL, list),
		"External", brokenLinkDeduction)
}

// allowlisted reports whether the URL matches a known-good endpoint.
func allowlisted(rawURL string) bool {
	for _, part := range allowlist {
		if strings.Contains(rawURL, part) {
			return true
		}
	}
	return false
}
