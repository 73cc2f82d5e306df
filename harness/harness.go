// Package harness runs tables of conflict fixtures against a single
// resolution strategy and reports pass/fail outcomes. A broken strategy
// fails its own case; it never aborts the run, so every registered
// fixture executes regardless of earlier failures.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/c0deZ3R0/go-conflict-kit/conflictkit"
	"github.com/c0deZ3R0/go-conflict-kit/logging"
)

// Case is one fixture: two input records and the expected resolution.
type Case struct {
	Name     string
	Local    conflictkit.Record
	Remote   conflictkit.Record
	Expected conflictkit.Resolved
}

// Summary reports the outcome of one suite run.
type Summary struct {
	Suite    string        `json:"suite"`
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// SuccessRate returns the pass percentage, 0 for an empty suite.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) * 100 / float64(s.Total)
}

// Tester runs fixtures against one bound strategy in registration order.
type Tester struct {
	suite    string
	strategy conflictkit.Strategy
	cases    []Case
	out      io.Writer
	metrics  conflictkit.MetricsCollector
	logger   *logging.Logger
}

// TesterOption configures a Tester.
type TesterOption func(*Tester)

// WithOutput redirects per-case reporting (default os.Stdout).
func WithOutput(w io.Writer) TesterOption {
	return func(t *Tester) { t.out = w }
}

// WithMetrics attaches a metrics collector (default no-op).
func WithMetrics(m conflictkit.MetricsCollector) TesterOption {
	return func(t *Tester) { t.metrics = m }
}

// WithLogger attaches a logger (default: kit logger with harness component).
func WithLogger(l *logging.Logger) TesterOption {
	return func(t *Tester) { t.logger = l }
}

// New creates a Tester for the given suite name bound to one strategy.
func New(suite string, strategy conflictkit.Strategy, opts ...TesterOption) *Tester {
	t := &Tester{
		suite:    suite,
		strategy: strategy,
		out:      os.Stdout,
		metrics:  &conflictkit.NoOpMetricsCollector{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.WithComponent("harness")
	}
	return t
}

// Suite returns the suite name.
func (t *Tester) Suite() string { return t.suite }

// Len returns the number of registered cases.
func (t *Tester) Len() int { return len(t.cases) }

// Add appends a fixture. No validation of shape: resolution is total, so
// any pair of records is a legal input.
func (t *Tester) Add(name string, local, remote conflictkit.Record, expected conflictkit.Resolved) {
	t.cases = append(t.cases, Case{Name: name, Local: local, Remote: remote, Expected: expected})
}

// AddCase appends a prebuilt fixture.
func (t *Tester) AddCase(c Case) { t.cases = append(t.cases, c) }

// Run executes all fixtures in registration order and returns the summary.
func (t *Tester) Run(ctx context.Context) Summary {
	start := time.Now()
	sum := Summary{Suite: t.suite, Total: len(t.cases)}

	fmt.Fprintf(t.out, "\n=== %s (%s) ===\n", t.suite, t.strategy.Name())

	for _, c := range t.cases {
		fmt.Fprintf(t.out, "Testing: %s\n", c.Name)

		got, err := t.invoke(c)
		if err != nil {
			sum.Failed++
			fmt.Fprintf(t.out, "  ❌ ERROR: %v\n", err)
			t.logger.LogError(ctx, err, "case errored",
				slog.String("suite", t.suite),
				slog.String("case", c.Name),
			)
			continue
		}

		t.metrics.RecordResolution(got.Resolution)

		if !cmp.Equal(c.Expected, got) {
			sum.Failed++
			fmt.Fprintf(t.out, "  ❌ FAILED\n     expected: %s\n     actual:   %s\n",
				mustJSON(c.Expected), mustJSON(got))
			continue
		}

		sum.Passed++
		fmt.Fprintln(t.out, "  ✅ PASSED")
	}

	sum.Duration = time.Since(start)
	fmt.Fprintf(t.out, "Total: %d  Passed: %d  Failed: %d\n", sum.Total, sum.Passed, sum.Failed)

	t.metrics.RecordCases(t.suite, sum.Total)
	t.metrics.RecordFailures(t.suite, sum.Failed)
	t.logger.InfoContext(ctx, "suite completed",
		slog.String("suite", t.suite),
		slog.Int("total", sum.Total),
		slog.Int("failed", sum.Failed),
		slog.Duration("duration", sum.Duration),
	)
	return sum
}

// invoke runs the strategy for one case, converting a panic into an error.
func (t *Tester) invoke(c Case) (res conflictkit.Resolved, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy panic: %v", r)
		}
	}()
	start := time.Now()
	res = t.strategy.Resolve(c.Local, c.Remote)
	t.metrics.RecordResolveDuration(t.strategy.Name(), time.Since(start))
	return res, nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<unmarshalable: %v>", err)
	}
	return string(data)
}
