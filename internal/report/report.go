// Package report renders a completed audit result as a textual report:
// grouped errors and warnings, the top linked pages, and the final score
// with a three-tier color band.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonesrussell/seoaudit/internal/audit"
	"github.com/jonesrussell/seoaudit/internal/graph"
	"github.com/jonesrussell/seoaudit/internal/ledger"
)

// topPageCount is how many pages the inbound-link ranking shows.
const topPageCount = 10

// Score bands for the color tiers.
const (
	scoreGreenFloor  = 90
	scoreYellowFloor = 60
)

// ruleWidth is the width of the report's horizontal rules.
const ruleWidth = 50

// plainStyle renders tables without borders or separators, with tab padding
// between columns.
var plainStyle = table.Style{
	Box: table.BoxStyle{
		PaddingLeft:  "\t",
		PaddingRight: "\t",
	},
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: false,
		SeparateHeader:  false,
		SeparateRows:    false,
	},
}

// Renderer writes audit reports to a writer.
type Renderer struct {
	w io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the full report for a completed run.
func (r *Renderer) Render(res *audit.Result) {
	fmt.Fprintf(r.w, "\n%s\n", strings.Repeat("=", ruleWidth))
	fmt.Fprintln(r.w, "SEO AUDIT REPORT")
	fmt.Fprintf(r.w, "%s\n\n", strings.Repeat("=", ruleWidth))

	errIssues := res.Ledger.BySeverity(ledger.SeverityError)
	warnIssues := res.Ledger.BySeverity(ledger.SeverityWarn)

	if len(errIssues) > 0 {
		fmt.Fprintln(r.w, text.FgRed.Sprintf("== ERRORS (%d) ==", len(errIssues)))
		r.renderIssues(errIssues)
	}

	if len(warnIssues) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, text.FgYellow.Sprintf("== WARNINGS (%d) ==", len(warnIssues)))
		r.renderIssues(warnIssues)
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, text.FgCyan.Sprint("== TOP PAGES (Inbound Links) =="))
	r.renderTopPages(res.Graph.TopTargets(topPageCount))

	score := res.Ledger.Score()
	fmt.Fprintf(r.w, "\n%s\n", strings.Repeat("-", ruleWidth))
	fmt.Fprintf(r.w, "FINAL SCORE: %s\n", scoreColor(score).Sprintf("%d/100", score))

	if score < ledger.StartingScore {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, text.FgMagenta.Sprint("Actionable Advice:"))
		fmt.Fprintln(r.w, "  Fix the errors above first; dead internal links cost the most.")
	}

	fmt.Fprintf(r.w, "%s\n\n", strings.Repeat("-", ruleWidth))
}

// renderIssues writes one "[source] message" line per finding.
func (r *Renderer) renderIssues(issues []ledger.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(r.w, "  [%s] %s\n", issue.Source, issue.Message)
	}
}

// renderTopPages writes the inbound-link ranking as a borderless table.
func (r *Renderer) renderTopPages(ranks []graph.TargetRank) {
	if len(ranks) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(plainStyle)

	t.AppendHeader(table.Row{"Page", "Inbound Links"})
	for _, rank := range ranks {
		t.AppendRow(table.Row{rank.ID, rank.Inbound})
	}

	t.Render()
}

// scoreColor picks the color tier for a final score.
func scoreColor(score int) text.Color {
	switch {
	case score >= scoreGreenFloor:
		return text.FgGreen
	case score >= scoreYellowFloor:
		return text.FgYellow
	default:
		return text.FgRed
	}
}
