package wt

import "database/sql"

// GateDecision is the outcome of comparing a document's persisted change
// marker against the one currently reported by the provider.
type GateDecision int

const (
	// GateFullSync exports the text and diffs it against the cache.
	GateFullSync GateDecision = iota
	// GateSkip takes the fast path: no export, no diff, no revision event.
	GateSkip
)

func (d GateDecision) String() string {
	switch d {
	case GateSkip:
		return "skip"
	default:
		return "full-sync"
	}
}

// Marker is a change marker observation. Available is false when the
// provider could not report one.
type Marker struct {
	Value     string
	Available bool
}

// NullString returns the marker in its persisted form.
func (m Marker) NullString() sql.NullString {
	return sql.NullString{String: m.Value, Valid: m.Available}
}

// Decide applies the revision gate. The fast path is taken only when a
// persisted marker exists and the provider reports the same value; an
// unavailable marker always forces a full sync.
func Decide(persisted sql.NullString, current Marker) GateDecision {
	if !persisted.Valid || !current.Available {
		return GateFullSync
	}
	if persisted.String != current.Value {
		return GateFullSync
	}
	return GateSkip
}
