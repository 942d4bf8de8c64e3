package creep

import (
	"strings"
	"testing"

	"extguard/internal/catalog"
	"extguard/internal/grading"
	"extguard/internal/model"
)

// helper grades permission sets with the canonical catalog and ladder.
type helper struct {
	cat    *catalog.Catalog
	engine *grading.Engine
}

func newHelper() *helper {
	cat := catalog.Default()
	return &helper{cat: cat, engine: grading.NewEngine(cat)}
}

func snapFor(h *helper, perms ...string) model.Snapshot {
	score := h.engine.Score(perms, nil)
	return model.Snapshot{
		ID:          "ext-1",
		Name:        "Test Extension",
		Version:     "1.0.0",
		Permissions: perms,
		Score:       score,
		Grade:       h.engine.Grade(score),
	}
}

func TestFirstSightBenignIsSilent(t *testing.T) {
	h := newHelper()
	cur := snapFor(h, "activeTab") // weight 1, grade A
	if ev := Classify(nil, cur, h.cat); ev != nil {
		t.Errorf("benign first sight must not be notable, got %+v", ev)
	}
}

func TestFirstSightRiskyFires(t *testing.T) {
	h := newHelper()
	// cookies(7) + history(7) + tabs(4) = 18, grade C
	cur := snapFor(h, "cookies", "history", "tabs")
	ev := Classify(nil, cur, h.cat)
	if ev == nil {
		t.Fatal("expected first-sight event")
	}
	if ev.Kind != KindFirstSight {
		t.Errorf("kind = %s, want %s", ev.Kind, KindFirstSight)
	}
	if ev.Severity != SevNormal {
		t.Errorf("grade C severity = %s, want %s", ev.Severity, SevNormal)
	}
}

func TestFirstSightFlaggedIsCritical(t *testing.T) {
	h := newHelper()
	// <all_urls>(10) + webRequestBlocking(10) + cookies(7) + history(7) = 34, grade D
	cur := snapFor(h, "<all_urls>", "webRequestBlocking", "cookies", "history")
	ev := Classify(nil, cur, h.cat)
	if ev == nil {
		t.Fatal("expected first-sight event")
	}
	if ev.Severity != SevCritical {
		t.Errorf("severity = %s, want %s", ev.Severity, SevCritical)
	}
}

func TestEscalationNamesAddedPermissions(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "storage", "tabs")
	cur := snapFor(h, "storage", "tabs", "webRequest", "cookies")

	ev := Classify(&prev, cur, h.cat)
	if ev == nil {
		t.Fatal("expected escalation event")
	}
	if ev.Kind != KindEscalation {
		t.Fatalf("kind = %s, want %s", ev.Kind, KindEscalation)
	}
	if ev.Severity != SevCritical {
		t.Errorf("escalation severity = %s, want %s", ev.Severity, SevCritical)
	}
	if len(ev.Added) != 2 || ev.Added[0] != "cookies" || ev.Added[1] != "webRequest" {
		t.Errorf("Added = %v, want sorted [cookies webRequest]", ev.Added)
	}

	msg := ev.Message(h.cat)
	if !strings.Contains(msg, "cookies") || !strings.Contains(msg, "webRequest") {
		t.Errorf("message must name the added permissions: %q", msg)
	}
}

func TestEscalationOutranksScoreIncrease(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "cookies", "history", "tabs") // grade C
	cur := snapFor(h, "cookies", "history", "tabs", "webRequest")

	ev := Classify(&prev, cur, h.cat)
	if ev == nil {
		t.Fatal("expected an event")
	}
	if ev.Kind != KindEscalation {
		t.Errorf("kind = %s, want escalation to win over score increase", ev.Kind)
	}
}

func TestEscalationRequiresSuperset(t *testing.T) {
	h := newHelper()
	// cookies swapped for webRequest: not a strict superset, rule 2
	// must not fire even though a dangerous permission was added.
	prev := snapFor(h, "storage", "cookies")
	cur := snapFor(h, "storage", "webRequest")

	ev := Classify(&prev, cur, h.cat)
	if ev != nil && ev.Kind == KindEscalation {
		t.Errorf("escalation fired on a non-superset change: %+v", ev)
	}
}

func TestLowTierAdditionIsNotEscalation(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "cookies", "history", "tabs") // 18, C
	cur := snapFor(h, "cookies", "history", "tabs", "bookmarks")

	ev := Classify(&prev, cur, h.cat)
	if ev == nil {
		t.Fatal("expected score-increase event")
	}
	if ev.Kind != KindScoreIncrease {
		t.Errorf("kind = %s, want %s", ev.Kind, KindScoreIncrease)
	}
	if ev.PrevGrade != model.GradeC {
		t.Errorf("PrevGrade = %s, want C", ev.PrevGrade)
	}
}

func TestUnknownPermissionAdditionIsNotEscalation(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "cookies", "history", "tabs")
	cur := snapFor(h, "cookies", "history", "tabs", "vendor.private.api")

	ev := Classify(&prev, cur, h.cat)
	if ev != nil && ev.Kind == KindEscalation {
		t.Errorf("unknown permission must not trigger escalation: %+v", ev)
	}
	// It still raises the score into a notable grade.
	if ev == nil || ev.Kind != KindScoreIncrease {
		t.Errorf("expected score-increase fallback, got %+v", ev)
	}
}

func TestScoreIncreaseBelowNotableIsSilent(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "storage")          // 1, A
	cur := snapFor(h, "storage", "alarms") // 2, A

	if ev := Classify(&prev, cur, h.cat); ev != nil {
		t.Errorf("grade A score bump must be silent, got %+v", ev)
	}
}

func TestUnchangedSnapshotIsSilent(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "cookies", "history", "tabs")
	cur := snapFor(h, "cookies", "history", "tabs")

	if ev := Classify(&prev, cur, h.cat); ev != nil {
		t.Errorf("identical permissions must be silent, got %+v", ev)
	}
}

func TestScoreDecreaseIsSilent(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "cookies", "history", "tabs")
	cur := snapFor(h, "cookies", "history")

	if ev := Classify(&prev, cur, h.cat); ev != nil {
		t.Errorf("score decrease must be silent, got %+v", ev)
	}
}

func TestKeysArePerKindAndPerExtension(t *testing.T) {
	h := newHelper()
	prev := snapFor(h, "storage", "tabs")
	cur := snapFor(h, "storage", "tabs", "cookies")

	esc := Classify(&prev, cur, h.cat)
	if esc == nil || esc.Kind != KindEscalation {
		t.Fatalf("expected escalation, got %+v", esc)
	}
	if esc.Key() != "perm-creep-ext-1" {
		t.Errorf("escalation key = %q", esc.Key())
	}

	first := Classify(nil, snapFor(h, "cookies", "history", "tabs"), h.cat)
	if first == nil {
		t.Fatal("expected first-sight event")
	}
	if first.Key() == esc.Key() {
		t.Error("different kinds must have different dedup keys")
	}
}

func TestFirstSightMessageCapsExplanations(t *testing.T) {
	h := newHelper()
	cur := snapFor(h, "<all_urls>", "webRequest", "cookies", "history", "geolocation")
	ev := Classify(nil, cur, h.cat)
	if ev == nil {
		t.Fatal("expected first-sight event")
	}
	msg := ev.Message(h.cat)
	if !strings.Contains(msg, "+2 more") {
		t.Errorf("expected overflow marker in message: %q", msg)
	}
}
