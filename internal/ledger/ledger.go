// Package ledger accumulates audit findings and maintains the running score.
// The ledger is append-only: issues are never removed and deductions are
// never restored within a run.
package ledger

import "sync"

// Severity classifies a finding.
type Severity string

const (
	// SeverityError marks findings that break the user or crawler experience.
	SeverityError Severity = "ERROR"
	// SeverityWarn marks hygiene and informational findings.
	SeverityWarn Severity = "WARN"
)

// StartingScore is the score before any deduction is applied.
const StartingScore = 100

// Issue is a single audit finding.
type Issue struct {
	Severity  Severity
	Message   string
	Source    string // page relative path or subsystem locator
	Deduction int
}

// Ledger is the process-wide finding log. Appends are safe under concurrent
// writers; the external-probe workers are the only concurrent stage.
type Ledger struct {
	mu     sync.Mutex
	issues []Issue
	score  int
}

// New creates an empty ledger with the full starting score.
func New() *Ledger {
	return &Ledger{score: StartingScore}
}

// Add records a finding and applies its deduction, flooring the score at zero.
func (l *Ledger) Add(sev Severity, message, source string, deduction int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.issues = append(l.issues, Issue{
		Severity:  sev,
		Message:   message,
		Source:    source,
		Deduction: deduction,
	})
	l.score = max(0, l.score-deduction)
}

// Score returns the current score in [0, StartingScore].
func (l *Ledger) Score() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.score
}

// Issues returns a copy of all recorded findings in insertion order.
func (l *Ledger) Issues() []Issue {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Issue, len(l.issues))
	copy(out, l.issues)
	return out
}

// BySeverity returns the findings with the given severity, in insertion order.
func (l *Ledger) BySeverity(sev Severity) []Issue {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Issue
	for _, issue := range l.issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Len returns the number of recorded findings.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.issues)
}
