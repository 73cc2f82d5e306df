package conflictkit

// Pair carries the two divergent versions of a record presented to the
// rule router for strategy selection.
type Pair struct {
	Local  Record
	Remote Record
}

// Spec is a predicate used to match record pairs to routing rules.
// Combinators allow building complex match logic from small, testable pieces.
type Spec func(Pair) bool

// And returns a spec that requires both specs to match.
func And(a, b Spec) Spec {
	return func(p Pair) bool { return a != nil && b != nil && a(p) && b(p) }
}

// Or returns a spec that requires at least one spec to match.
func Or(a, b Spec) Spec {
	return func(p Pair) bool { return (a != nil && a(p)) || (b != nil && b(p)) }
}

// Not returns a spec that negates the provided spec.
func Not(a Spec) Spec {
	return func(p Pair) bool { return a == nil || !a(p) }
}

// HasTombstone matches when either side has been deleted.
func HasTombstone() Spec {
	return func(p Pair) bool { return p.Local.Deleted() || p.Remote.Deleted() }
}

// HasVersion matches when either side carries a version counter.
func HasVersion() Spec {
	return func(p Pair) bool { return p.Local.Version != 0 || p.Remote.Version != 0 }
}

// HasFieldTimes matches when either side carries per-field shadow timestamps.
func HasFieldTimes() Spec {
	return func(p Pair) bool { return len(p.Local.FieldTimes) > 0 || len(p.Remote.FieldTimes) > 0 }
}

// StatusIs matches when either side is in the given status.
func StatusIs(s Status) Spec {
	return func(p Pair) bool { return p.Local.Status == s || p.Remote.Status == s }
}

// IDIs matches a specific record identity.
func IDIs(id string) Spec {
	return func(p Pair) bool { return p.Local.ID == id || p.Remote.ID == id }
}
