package model

import "time"

// Tier classifies the risk of a single permission.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierMedium   Tier = "MEDIUM"
	TierHigh     Tier = "HIGH"
	TierCritical Tier = "CRITICAL"
)

// TierRank maps tiers to comparable integers for escalation checks.
var TierRank = map[Tier]int{
	TierLow:      0,
	TierMedium:   1,
	TierHigh:     2,
	TierCritical: 3,
}

// Dangerous reports whether the tier warrants a creep alert on its own.
func (t Tier) Dangerous() bool {
	return t == TierHigh || t == TierCritical
}

// Grade is the letter summary of an extension's total risk score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeRank maps grades to comparable integers. Higher rank = worse.
var GradeRank = map[Grade]int{
	GradeA: 0,
	GradeB: 1,
	GradeC: 2,
	GradeD: 3,
	GradeF: 4,
}

// RiskLevel returns the display label for a grade. Display only,
// never used for control flow.
func (g Grade) RiskLevel() string {
	switch g {
	case GradeA:
		return "Safe"
	case GradeB:
		return "Low Risk"
	case GradeC:
		return "Moderate Risk"
	case GradeD:
		return "High Risk"
	default:
		return "Dangerous"
	}
}

// Flagged reports whether the grade counts toward the flagged total
// in scan summaries.
func (g Grade) Flagged() bool {
	return g == GradeD || g == GradeF
}

// Notable reports whether the grade is bad enough to alert on first sight.
func (g Grade) Notable() bool {
	return g == GradeC || g == GradeD || g == GradeF
}

// Snapshot is the graded state of one extension as of its most recent scan.
// The store keeps exactly one snapshot per extension id — the latest.
type Snapshot struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Version         string    `json:"version"`
	Enabled         bool      `json:"enabled"`
	Permissions     []string  `json:"permissions"`
	HostPermissions []string  `json:"host_permissions"`
	Score           int       `json:"score"`
	Grade           Grade     `json:"grade"`
	ScannedAt       time.Time `json:"scanned_at"`
}

// AllPermissions returns the deduplicated union of API and host permissions.
func (s Snapshot) AllPermissions() []string {
	seen := make(map[string]bool, len(s.Permissions)+len(s.HostPermissions))
	union := make([]string, 0, len(s.Permissions)+len(s.HostPermissions))
	for _, p := range s.Permissions {
		if !seen[p] {
			seen[p] = true
			union = append(union, p)
		}
	}
	for _, p := range s.HostPermissions {
		if !seen[p] {
			seen[p] = true
			union = append(union, p)
		}
	}
	return union
}

// HasPermission reports whether the snapshot holds the given permission
// in either its API or host permission set.
func (s Snapshot) HasPermission(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	for _, p := range s.HostPermissions {
		if p == perm {
			return true
		}
	}
	return false
}
