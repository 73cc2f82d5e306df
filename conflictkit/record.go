// Package conflictkit provides deterministic conflict resolution strategies
// for records that diverged across replicas, e.g. after offline edits on two
// devices. Strategies are pure functions over two versions of the same
// logical record: they never mutate their inputs, never fail, and always
// produce exactly one resolved record tagged with the rule that decided it.
package conflictkit

import "maps"

// Status is the workflow state of a record. The lifecycle is ordered:
// a record moves forward through these states and never backward.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusArchived   Status = "archived"
)

var statusPriority = map[Status]int{
	StatusPending:    1,
	StatusInProgress: 2,
	StatusReview:     3,
	StatusDone:       4,
	StatusArchived:   5,
}

// Priority returns the position of the status in the workflow lifecycle.
// Unknown or empty statuses rank below every known state.
func (s Status) Priority() int { return statusPriority[s] }

// Field names a record field that carries its own shadow timestamp for
// field-level merging.
type Field string

const (
	FieldTitle  Field = "title"
	FieldStatus Field = "status"
)

// Record is one version of a syncable item. Zero values stand in for
// absent fields: comparisons in every strategy are strict, so an unset
// timestamp or version always loses and ties fall to the documented
// tie-break rule. This keeps resolution total without input validation.
type Record struct {
	// ID is the stable identity of the record. No strategy ever changes it.
	ID string `json:"id" yaml:"id"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status `json:"status,omitempty" yaml:"status,omitempty"`

	// Version is a monotonically increasing write counter (0 = unset).
	Version int64 `json:"version,omitempty" yaml:"version,omitempty"`

	// UpdatedAt is a unix-millisecond timestamp; higher means newer.
	UpdatedAt int64 `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// FieldTimes holds per-field shadow timestamps used by field-level
	// merging (e.g. when the title was last edited, independent of the
	// record-level UpdatedAt).
	FieldTimes map[Field]int64 `json:"field_times,omitempty" yaml:"field_times,omitempty"`

	// DeletedAt is the tombstone timestamp; 0 means the record is live.
	DeletedAt int64 `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// Clone returns a deep copy of the record. Strategies build their result
// from clones so callers can rely on local and remote staying untouched.
func (r Record) Clone() Record {
	out := r
	if r.FieldTimes != nil {
		out.FieldTimes = maps.Clone(r.FieldTimes)
	}
	return out
}

// FieldTime returns the shadow timestamp for f, or 0 when absent.
func (r Record) FieldTime(f Field) int64 { return r.FieldTimes[f] }

// Deleted reports whether the record carries a tombstone.
func (r Record) Deleted() bool { return r.DeletedAt != 0 }

// Resolution names the rule that decided a conflict.
type Resolution string

const (
	// ResolutionLocal means the local record was kept wholesale.
	ResolutionLocal Resolution = "local"

	// ResolutionRemote means the remote record was kept wholesale.
	ResolutionRemote Resolution = "remote"

	// ResolutionMerged means fields were combined from both sides.
	ResolutionMerged Resolution = "merged"

	// ResolutionSemantic means domain ordering decided the outcome.
	ResolutionSemantic Resolution = "semantic"

	// ResolutionDeleted means a tombstone on either side won.
	ResolutionDeleted Resolution = "deleted"
)

// Valid reports whether r is one of the known resolution tags.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionLocal, ResolutionRemote, ResolutionMerged, ResolutionSemantic, ResolutionDeleted:
		return true
	}
	return false
}

// Resolved pairs the merged record with the resolution tag that produced it.
type Resolved struct {
	Record     Record     `json:"record" yaml:"record"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
}
