// Package creep decides whether the transition between two consecutive
// snapshots of one extension warrants a user-facing alert.
package creep

import (
	"sort"

	"extguard/internal/catalog"
	"extguard/internal/model"
)

// Kind identifies which rule of the decision table fired.
type Kind string

const (
	// KindFirstSight: no previous snapshot and the grade is C, D, or F.
	KindFirstSight Kind = "first_sight"
	// KindEscalation: an added permission has tier HIGH or CRITICAL,
	// regardless of whether the aggregate grade moved.
	KindEscalation Kind = "escalation"
	// KindScoreIncrease: the score went up and the new grade is C/D/F.
	KindScoreIncrease Kind = "score_increase"
)

// Severity of a notable event.
type Severity string

const (
	SevNormal   Severity = "normal"
	SevCritical Severity = "critical"
)

// Event is a notable state transition. At most one is produced per
// scan of an extension.
type Event struct {
	Kind     Kind
	Severity Severity
	Snapshot model.Snapshot
	// PrevGrade is set for kinds with a previous snapshot.
	PrevGrade model.Grade
	// Added lists the permissions that triggered an escalation, in
	// sorted order. Empty for other kinds.
	Added []string
}

// severityFor scales severity with the grade: C is a warning, D and F
// are critical.
func severityFor(g model.Grade) Severity {
	if g.Flagged() {
		return SevCritical
	}
	return SevNormal
}

// Classify applies the decision table in priority order; the first
// applicable rule fires. A nil return means the change is not notable
// and no alert or activity entry is due — the store update has still
// happened.
func Classify(prev *model.Snapshot, cur model.Snapshot, cat *catalog.Catalog) *Event {
	// Rule 1: first sight.
	if prev == nil {
		if !cur.Grade.Notable() {
			return nil
		}
		return &Event{
			Kind:     KindFirstSight,
			Severity: severityFor(cur.Grade),
			Snapshot: cur,
		}
	}

	// Rule 2: a newly granted permission with a dangerous tier. This
	// outranks the score rule because a single new CRITICAL permission
	// can leave an already-bad letter grade unchanged and still
	// deserves its own alert naming exactly what was added.
	if added := dangerousAdded(prev, cur, cat); len(added) > 0 {
		return &Event{
			Kind:      KindEscalation,
			Severity:  SevCritical,
			Snapshot:  cur,
			PrevGrade: prev.Grade,
			Added:     added,
		}
	}

	// Rule 3: score increased into a notable grade.
	if cur.Score > prev.Score && cur.Grade.Notable() {
		return &Event{
			Kind:      KindScoreIncrease,
			Severity:  severityFor(cur.Grade),
			Snapshot:  cur,
			PrevGrade: prev.Grade,
		}
	}

	return nil
}

// dangerousAdded returns the added permissions whose tier is HIGH or
// CRITICAL. The rule only applies when the current union strictly
// grew: if permissions were also dropped the aggregate score rule
// covers the change instead. Unknown permissions are not dangerous for
// escalation purposes — they are already charged through the score
// penalty.
func dangerousAdded(prev *model.Snapshot, cur model.Snapshot, cat *catalog.Catalog) []string {
	for _, p := range prev.AllPermissions() {
		if !cur.HasPermission(p) {
			return nil // not a superset
		}
	}

	var added []string
	for _, p := range cur.AllPermissions() {
		if prev.HasPermission(p) {
			continue
		}
		if r, ok := cat.Lookup(p); ok && r.Tier.Dangerous() {
			added = append(added, p)
		}
	}
	sort.Strings(added)
	return added
}
