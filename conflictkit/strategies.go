package conflictkit

// Strategy resolves a conflict between two versions of the same logical
// record. Implementations must be pure: no side effects, no mutation of
// local or remote, and deterministic output for identical inputs.
type Strategy interface {
	// Name returns a stable identifier for the strategy.
	Name() string

	// Resolve produces the reconciled record. Resolution is total: every
	// pair of inputs yields exactly one output, never an error.
	Resolve(local, remote Record) Resolved
}

var (
	_ Strategy = LastWriteWins{}
	_ Strategy = VersionBased{}
	_ Strategy = FieldMerge{}
	_ Strategy = SemanticMerge{}
	_ Strategy = DeleteUpdate{}
)

// LastWriteWins keeps whichever side has the strictly newer UpdatedAt.
// On a timestamp tie the local record wins: the local replica already has
// that state applied, and flipping to remote would churn without new data.
type LastWriteWins struct{}

func (LastWriteWins) Name() string { return "last-write-wins" }

func (LastWriteWins) Resolve(local, remote Record) Resolved {
	if remote.UpdatedAt > local.UpdatedAt {
		return Resolved{Record: remote.Clone(), Resolution: ResolutionRemote}
	}
	return Resolved{Record: local.Clone(), Resolution: ResolutionLocal}
}

// VersionBased treats the version counter as the authoritative ordering:
// a strictly higher version wins outright regardless of timestamps. Equal
// versions fall back to the last-write-wins timestamp rule.
type VersionBased struct{}

func (VersionBased) Name() string { return "version-based" }

func (VersionBased) Resolve(local, remote Record) Resolved {
	if remote.Version > local.Version {
		return Resolved{Record: remote.Clone(), Resolution: ResolutionRemote}
	}
	if local.Version > remote.Version {
		return Resolved{Record: local.Clone(), Resolution: ResolutionLocal}
	}
	return LastWriteWins{}.Resolve(local, remote)
}

// FieldMerge reconciles at field granularity instead of picking one side's
// whole record. Each mergeable field keeps the value from whichever side
// has the strictly greater shadow timestamp, and the winning shadow
// timestamp propagates forward. Description has a custom policy: remote's
// value is preferred when non-empty, otherwise local's is kept.
type FieldMerge struct{}

func (FieldMerge) Name() string { return "field-merge" }

func (FieldMerge) Resolve(local, remote Record) Resolved {
	out := local.Clone()
	for _, f := range []Field{FieldTitle, FieldStatus} {
		if remote.FieldTime(f) <= local.FieldTime(f) {
			continue
		}
		switch f {
		case FieldTitle:
			out.Title = remote.Title
		case FieldStatus:
			out.Status = remote.Status
		}
		if out.FieldTimes == nil {
			out.FieldTimes = make(map[Field]int64)
		}
		out.FieldTimes[f] = remote.FieldTime(f)
	}
	if remote.Description != "" {
		out.Description = remote.Description
	}
	out.UpdatedAt = max(local.UpdatedAt, remote.UpdatedAt)
	return Resolved{Record: out, Resolution: ResolutionMerged}
}

// SemanticMerge encodes domain knowledge about the status lifecycle:
// whichever side's status ranks higher in the workflow order wins, even
// when the other side is newer in wall-clock time. This prevents clock
// skew from regressing an archived item back to in_progress. Title is
// resolved by plain last-write-wins on UpdatedAt.
type SemanticMerge struct{}

func (SemanticMerge) Name() string { return "semantic-merge" }

func (SemanticMerge) Resolve(local, remote Record) Resolved {
	out := local.Clone()
	if remote.Status.Priority() > local.Status.Priority() {
		out.Status = remote.Status
	}
	if remote.UpdatedAt > local.UpdatedAt {
		out.Title = remote.Title
	}
	out.UpdatedAt = max(local.UpdatedAt, remote.UpdatedAt)
	return Resolved{Record: out, Resolution: ResolutionSemantic}
}

// DeleteUpdate resolves delete-versus-update races. When either side
// carries a tombstone the record stays deleted: remote's populated fields
// override local's, but the tombstone timestamp prefers local's when both
// are set. That asymmetry (local tombstone precedence vs. the remote-wins
// LWW default) is intentional, preserved behavior and is pinned by tests.
// With no tombstone on either side, plain last-write-wins applies.
type DeleteUpdate struct{}

func (DeleteUpdate) Name() string { return "delete-update" }

func (DeleteUpdate) Resolve(local, remote Record) Resolved {
	if !local.Deleted() && !remote.Deleted() {
		return LastWriteWins{}.Resolve(local, remote)
	}

	// Field-by-field precedence, remote over local for populated fields.
	out := local.Clone()
	if remote.ID != "" {
		out.ID = remote.ID
	}
	if remote.Title != "" {
		out.Title = remote.Title
	}
	if remote.Description != "" {
		out.Description = remote.Description
	}
	if remote.Status != "" {
		out.Status = remote.Status
	}
	if remote.Version != 0 {
		out.Version = remote.Version
	}
	if remote.UpdatedAt != 0 {
		out.UpdatedAt = remote.UpdatedAt
	}
	for f, ts := range remote.FieldTimes {
		if out.FieldTimes == nil {
			out.FieldTimes = make(map[Field]int64)
		}
		out.FieldTimes[f] = ts
	}

	out.DeletedAt = local.DeletedAt
	if out.DeletedAt == 0 {
		out.DeletedAt = remote.DeletedAt
	}
	return Resolved{Record: out, Resolution: ResolutionDeleted}
}
