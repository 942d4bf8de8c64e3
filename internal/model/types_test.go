package model

import "testing"

func TestTierDangerous(t *testing.T) {
	cases := []struct {
		tier Tier
		want bool
	}{
		{TierLow, false},
		{TierMedium, false},
		{TierHigh, true},
		{TierCritical, true},
	}
	for _, c := range cases {
		if got := c.tier.Dangerous(); got != c.want {
			t.Errorf("%s.Dangerous() = %v, want %v", c.tier, got, c.want)
		}
	}
}

func TestTierRankOrdering(t *testing.T) {
	order := []Tier{TierLow, TierMedium, TierHigh, TierCritical}
	for i := 1; i < len(order); i++ {
		if TierRank[order[i-1]] >= TierRank[order[i]] {
			t.Errorf("expected %s to rank below %s", order[i-1], order[i])
		}
	}
}

func TestGradeRiskLevel(t *testing.T) {
	cases := []struct {
		grade Grade
		want  string
	}{
		{GradeA, "Safe"},
		{GradeB, "Low Risk"},
		{GradeC, "Moderate Risk"},
		{GradeD, "High Risk"},
		{GradeF, "Dangerous"},
	}
	for _, c := range cases {
		if got := c.grade.RiskLevel(); got != c.want {
			t.Errorf("%s.RiskLevel() = %q, want %q", c.grade, got, c.want)
		}
	}
}

func TestGradeFlaggedAndNotable(t *testing.T) {
	if GradeA.Flagged() || GradeB.Flagged() || GradeC.Flagged() {
		t.Error("A, B and C must not be flagged")
	}
	if !GradeD.Flagged() || !GradeF.Flagged() {
		t.Error("D and F must be flagged")
	}
	if GradeA.Notable() || GradeB.Notable() {
		t.Error("A and B must not be notable")
	}
	if !GradeC.Notable() || !GradeD.Notable() || !GradeF.Notable() {
		t.Error("C, D and F must be notable")
	}
}

func TestAllPermissionsDeduplicates(t *testing.T) {
	s := Snapshot{
		Permissions:     []string{"tabs", "storage", "tabs"},
		HostPermissions: []string{"<all_urls>", "storage"},
	}
	union := s.AllPermissions()
	if len(union) != 3 {
		t.Fatalf("expected 3 unique permissions, got %d: %v", len(union), union)
	}
	seen := map[string]bool{}
	for _, p := range union {
		if seen[p] {
			t.Errorf("duplicate %q in union", p)
		}
		seen[p] = true
	}
}

func TestHasPermissionChecksBothSets(t *testing.T) {
	s := Snapshot{
		Permissions:     []string{"tabs"},
		HostPermissions: []string{"<all_urls>"},
	}
	if !s.HasPermission("tabs") {
		t.Error("expected tabs in API set")
	}
	if !s.HasPermission("<all_urls>") {
		t.Error("expected <all_urls> in host set")
	}
	if s.HasPermission("cookies") {
		t.Error("did not expect cookies")
	}
}
