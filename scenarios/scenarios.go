// Package scenarios provides the built-in fixture suites exercising each
// conflict resolution strategy, plus an aggregate runner over all of them.
package scenarios

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/c0deZ3R0/go-conflict-kit/conflictkit"
	"github.com/c0deZ3R0/go-conflict-kit/harness"
	"github.com/c0deZ3R0/go-conflict-kit/report"
)

// LWWSuite exercises the last-write-wins strategy.
func LWWSuite(opts ...harness.TesterOption) *harness.Tester {
	t := harness.New("Last-Write-Wins", conflictkit.LastWriteWins{}, opts...)

	t.Add("remote newer wins",
		conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 1000},
		conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
			Resolution: conflictkit.ResolutionRemote,
		})

	t.Add("timestamp tie keeps local",
		conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 1000},
		conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 1000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 1000},
			Resolution: conflictkit.ResolutionLocal,
		})

	t.Add("local newer wins",
		conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 3000},
		conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 3000},
			Resolution: conflictkit.ResolutionLocal,
		})

	return t
}

// VersionSuite exercises version-counter resolution.
func VersionSuite(opts ...harness.TesterOption) *harness.Tester {
	t := harness.New("Version-Based", conflictkit.VersionBased{}, opts...)

	t.Add("higher remote version beats newer local timestamp",
		conflictkit.Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 3000},
		conflictkit.Record{ID: "1", Title: "Remote", Version: 3, UpdatedAt: 1000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Remote", Version: 3, UpdatedAt: 1000},
			Resolution: conflictkit.ResolutionRemote,
		})

	t.Add("higher local version wins",
		conflictkit.Record{ID: "1", Title: "Local", Version: 5, UpdatedAt: 1000},
		conflictkit.Record{ID: "1", Title: "Remote", Version: 4, UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Local", Version: 5, UpdatedAt: 1000},
			Resolution: conflictkit.ResolutionLocal,
		})

	t.Add("equal versions fall back to timestamps",
		conflictkit.Record{ID: "1", Title: "Local", Version: 2, UpdatedAt: 1000},
		conflictkit.Record{ID: "1", Title: "Remote", Version: 2, UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Remote", Version: 2, UpdatedAt: 2000},
			Resolution: conflictkit.ResolutionRemote,
		})

	return t
}

// FieldMergeSuite exercises field-level merging with shadow timestamps.
func FieldMergeSuite(opts ...harness.TesterOption) *harness.Tester {
	t := harness.New("Field-Level Merge", conflictkit.FieldMerge{}, opts...)

	t.Add("each field follows its own shadow timestamp",
		conflictkit.Record{
			ID: "1", Title: "Local Title", Status: conflictkit.StatusPending,
			Description: "Local description", UpdatedAt: 2000,
			FieldTimes: map[conflictkit.Field]int64{
				conflictkit.FieldTitle:  2000,
				conflictkit.FieldStatus: 1000,
			},
		},
		conflictkit.Record{
			ID: "1", Title: "Remote Title", Status: conflictkit.StatusInProgress,
			Description: "", UpdatedAt: 3000,
			FieldTimes: map[conflictkit.Field]int64{
				conflictkit.FieldTitle:  1000,
				conflictkit.FieldStatus: 3000,
			},
		},
		conflictkit.Resolved{
			Record: conflictkit.Record{
				ID: "1", Title: "Local Title", Status: conflictkit.StatusInProgress,
				Description: "Local description", UpdatedAt: 3000,
				FieldTimes: map[conflictkit.Field]int64{
					conflictkit.FieldTitle:  2000,
					conflictkit.FieldStatus: 3000,
				},
			},
			Resolution: conflictkit.ResolutionMerged,
		})

	t.Add("non-empty remote description overrides local",
		conflictkit.Record{
			ID: "2", Title: "Shared", Description: "old local text", UpdatedAt: 1000,
			FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 1000},
		},
		conflictkit.Record{
			ID: "2", Title: "Shared", Description: "fresh remote text", UpdatedAt: 1500,
			FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 1000},
		},
		conflictkit.Resolved{
			Record: conflictkit.Record{
				ID: "2", Title: "Shared", Description: "fresh remote text", UpdatedAt: 1500,
				FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 1000},
			},
			Resolution: conflictkit.ResolutionMerged,
		})

	t.Add("shadow timestamp tie keeps local value",
		conflictkit.Record{
			ID: "3", Title: "Local", UpdatedAt: 1000,
			FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 2000},
		},
		conflictkit.Record{
			ID: "3", Title: "Remote", UpdatedAt: 1000,
			FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 2000},
		},
		conflictkit.Resolved{
			Record: conflictkit.Record{
				ID: "3", Title: "Local", UpdatedAt: 1000,
				FieldTimes: map[conflictkit.Field]int64{conflictkit.FieldTitle: 2000},
			},
			Resolution: conflictkit.ResolutionMerged,
		})

	return t
}

// SemanticSuite exercises workflow-aware status merging.
func SemanticSuite(opts ...harness.TesterOption) *harness.Tester {
	t := harness.New("Semantic Merge", conflictkit.SemanticMerge{}, opts...)

	t.Add("done survives newer in_progress edit",
		conflictkit.Record{ID: "1", Title: "Local", Status: conflictkit.StatusDone, UpdatedAt: 1000},
		conflictkit.Record{ID: "1", Title: "Remote", Status: conflictkit.StatusInProgress, UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Remote", Status: conflictkit.StatusDone, UpdatedAt: 2000},
			Resolution: conflictkit.ResolutionSemantic,
		})

	t.Add("archived beats done regardless of recency",
		conflictkit.Record{ID: "2", Title: "Local", Status: conflictkit.StatusDone, UpdatedAt: 5000},
		conflictkit.Record{ID: "2", Title: "Remote", Status: conflictkit.StatusArchived, UpdatedAt: 1000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "2", Title: "Local", Status: conflictkit.StatusArchived, UpdatedAt: 5000},
			Resolution: conflictkit.ResolutionSemantic,
		})

	t.Add("equal status follows title recency",
		conflictkit.Record{ID: "3", Title: "Local", Status: conflictkit.StatusReview, UpdatedAt: 1000},
		conflictkit.Record{ID: "3", Title: "Remote", Status: conflictkit.StatusReview, UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "3", Title: "Remote", Status: conflictkit.StatusReview, UpdatedAt: 2000},
			Resolution: conflictkit.ResolutionSemantic,
		})

	return t
}

// DeleteUpdateSuite exercises delete-versus-update races, including the
// intentional asymmetry where remote's fields win the merge but a local
// tombstone timestamp takes precedence when both sides are deleted.
func DeleteUpdateSuite(opts ...harness.TesterOption) *harness.Tester {
	t := harness.New("Delete-Update", conflictkit.DeleteUpdate{}, opts...)

	t.Add("local delete beats remote update",
		conflictkit.Record{ID: "1", Title: "Local", UpdatedAt: 2000, DeletedAt: 2000},
		conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 1000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "1", Title: "Remote", UpdatedAt: 1000, DeletedAt: 2000},
			Resolution: conflictkit.ResolutionDeleted,
		})

	t.Add("remote delete beats local update",
		conflictkit.Record{ID: "2", Title: "Local", UpdatedAt: 3000},
		conflictkit.Record{ID: "2", Title: "Remote", UpdatedAt: 1000, DeletedAt: 1500},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "2", Title: "Remote", UpdatedAt: 1000, DeletedAt: 1500},
			Resolution: conflictkit.ResolutionDeleted,
		})

	t.Add("both deleted: remote fields, local tombstone",
		conflictkit.Record{ID: "3", Title: "Local", UpdatedAt: 1500, DeletedAt: 2000},
		conflictkit.Record{ID: "3", Title: "Remote", UpdatedAt: 1000, DeletedAt: 3000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "3", Title: "Remote", UpdatedAt: 1000, DeletedAt: 2000},
			Resolution: conflictkit.ResolutionDeleted,
		})

	t.Add("neither deleted falls back to last-write-wins",
		conflictkit.Record{ID: "4", Title: "Local", UpdatedAt: 1000},
		conflictkit.Record{ID: "4", Title: "Remote", UpdatedAt: 2000},
		conflictkit.Resolved{
			Record:     conflictkit.Record{ID: "4", Title: "Remote", UpdatedAt: 2000},
			Resolution: conflictkit.ResolutionRemote,
		})

	return t
}

// Aggregate is the combined outcome of a full run across all suites.
type Aggregate struct {
	RunID     string            `json:"run_id"`
	StartedAt time.Time         `json:"started_at"`
	Suites    []harness.Summary `json:"suites"`
	Total     int               `json:"total"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Duration  time.Duration     `json:"duration"`
}

// SuccessRate returns the overall pass percentage, 0 for an empty run.
func (a Aggregate) SuccessRate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Passed) * 100 / float64(a.Total)
}

// OK reports whether every fixture across every suite passed.
func (a Aggregate) OK() bool { return a.Failed == 0 }

// Options configures a RunAll invocation.
type Options struct {
	// Out receives per-case reporting and the final aggregate box.
	// Defaults to os.Stdout.
	Out io.Writer

	// Metrics is attached to every suite. Defaults to no-op.
	Metrics conflictkit.MetricsCollector

	// Extra suites (e.g. loaded from a scenario file) run after the
	// built-in ones and count toward the aggregate.
	Extra []*harness.Tester
}

// Suites returns the five built-in suites in their canonical order.
func Suites(opts ...harness.TesterOption) []*harness.Tester {
	return []*harness.Tester{
		LWWSuite(opts...),
		VersionSuite(opts...),
		FieldMergeSuite(opts...),
		SemanticSuite(opts...),
		DeleteUpdateSuite(opts...),
	}
}

// RunAll runs every built-in suite (plus any extras) sequentially,
// prints the aggregate box, and returns the combined result.
func RunAll(ctx context.Context, opts Options) Aggregate {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	topts := []harness.TesterOption{harness.WithOutput(opts.Out)}
	if opts.Metrics != nil {
		topts = append(topts, harness.WithMetrics(opts.Metrics))
	}

	suites := Suites(topts...)
	suites = append(suites, opts.Extra...)

	agg := Aggregate{RunID: uuid.NewString(), StartedAt: time.Now()}
	for _, s := range suites {
		sum := s.Run(ctx)
		agg.Suites = append(agg.Suites, sum)
		agg.Total += sum.Total
		agg.Passed += sum.Passed
		agg.Failed += sum.Failed
	}
	agg.Duration = time.Since(agg.StartedAt)

	fmt.Fprintln(opts.Out, report.RenderAggregate(agg.Suites))
	return agg
}
