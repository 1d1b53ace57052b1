package ledger_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seoaudit/internal/ledger"
)

func TestLedger_Add(t *testing.T) {
	l := ledger.New()
	require.Equal(t, ledger.StartingScore, l.Score())
	require.Zero(t, l.Len())

	l.Add(ledger.SeverityError, "Missing H1 tag", "/about", 5)
	require.Equal(t, 95, l.Score())

	l.Add(ledger.SeverityWarn, "Missing Schema (application/ld+json)", "/about", 2)
	require.Equal(t, 93, l.Score())

	// Zero-deduction findings are recorded but do not move the score.
	l.Add(ledger.SeverityWarn, "Multiple H1 tags found (2)", "/blog", 0)
	require.Equal(t, 93, l.Score())
	require.Equal(t, 3, l.Len())
}

func TestLedger_ScoreFloor(t *testing.T) {
	l := ledger.New()

	for i := 0; i < 15; i++ {
		l.Add(ledger.SeverityError, "Dead Internal Link: /gone", "/", 10)
	}

	require.Equal(t, 0, l.Score())
	require.Equal(t, 15, l.Len())
}

func TestLedger_BySeverity(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.SeverityError, "Missing H1 tag", "/a", 5)
	l.Add(ledger.SeverityWarn, "Relative path used: x", "/a", 2)
	l.Add(ledger.SeverityError, "Dead Internal Link: /b", "/a", 10)

	errs := l.BySeverity(ledger.SeverityError)
	require.Len(t, errs, 2)
	require.Equal(t, "Missing H1 tag", errs[0].Message)
	require.Equal(t, "Dead Internal Link: /b", errs[1].Message)

	warns := l.BySeverity(ledger.SeverityWarn)
	require.Len(t, warns, 1)
	require.Equal(t, 2, warns[0].Deduction)
}

func TestLedger_IssuesCopy(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.SeverityWarn, "External link", "/a", 0)

	issues := l.Issues()
	issues[0].Message = "mutated"

	require.Equal(t, "External link", l.Issues()[0].Message)
}

func TestLedger_ConcurrentAdd(t *testing.T) {
	l := ledger.New()

	const workers = 10
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				l.Add(ledger.SeverityWarn, "External link", "/a", 0)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, l.Len())
	require.Equal(t, ledger.StartingScore, l.Score())
}
