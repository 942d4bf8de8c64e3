package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"extguard/internal/kv"
)

func TestAppendNewestFirst(t *testing.T) {
	l, err := Open(kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := l.Record("extensionMonitor", "🔍", fmt.Sprintf("event %d", i)); err != nil {
			t.Fatal(err)
		}
	}

	got := l.Recent(0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Description != "event 2" || got[2].Description != "event 0" {
		t.Errorf("entries not newest first: %+v", got)
	}
}

func TestAppendStampsZeroTimestamp(t *testing.T) {
	l, err := Open(kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l.SetClock(func() time.Time { return fixed })

	if err := l.Record("extensionMonitor", "🔍", "stamped"); err != nil {
		t.Fatal(err)
	}
	if got := l.Recent(1)[0].Timestamp; !got.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", got, fixed)
	}

	explicit := fixed.Add(-time.Hour)
	if err := l.Append(Entry{Description: "explicit", Timestamp: explicit}); err != nil {
		t.Fatal(err)
	}
	if got := l.Recent(1)[0].Timestamp; !got.Equal(explicit) {
		t.Errorf("explicit timestamp overwritten: %v", got)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	l, err := Open(kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < Capacity+50; i++ {
		if err := l.Record("extensionMonitor", "🔍", fmt.Sprintf("event %d", i)); err != nil {
			t.Fatal(err)
		}
	}

	if l.Len() != Capacity {
		t.Fatalf("expected exactly %d retained entries, got %d", Capacity, l.Len())
	}
	got := l.Recent(0)
	if got[0].Description != fmt.Sprintf("event %d", Capacity+49) {
		t.Errorf("newest entry wrong: %s", got[0].Description)
	}
	if got[len(got)-1].Description != fmt.Sprintf("event %d", 50) {
		t.Errorf("oldest retained entry wrong: %s", got[len(got)-1].Description)
	}
}

func TestRecentLimit(t *testing.T) {
	l, err := Open(kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := l.Record("m", "i", "d"); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.Recent(3); len(got) != 3 {
		t.Errorf("Recent(3) = %d entries", len(got))
	}
	if got := l.Recent(100); len(got) != 10 {
		t.Errorf("Recent(100) = %d entries", len(got))
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	backend := kv.NewMemory()
	l, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Record("extensionMonitor", "🔍", "persisted"); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	got := reopened.Recent(0)
	if len(got) != 1 || got[0].Description != "persisted" {
		t.Errorf("log lost across reopen: %+v", got)
	}
}

func TestOpenMalformedStartsFresh(t *testing.T) {
	backend := kv.NewMemory()
	if err := backend.Set("activityLog", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	l, err := Open(backend)
	if err != nil {
		t.Fatalf("malformed log must not fail Open: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty log, got %d entries", l.Len())
	}
}

func TestOpenTruncatesOversizedRecord(t *testing.T) {
	backend := kv.NewMemory()
	var entries []Entry
	for i := 0; i < Capacity+20; i++ {
		entries = append(entries, Entry{Description: fmt.Sprintf("e%d", i)})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	if err := backend.Set("activityLog", data); err != nil {
		t.Fatal(err)
	}

	l, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != Capacity {
		t.Errorf("expected truncation to %d, got %d", Capacity, l.Len())
	}
}

func TestClear(t *testing.T) {
	backend := kv.NewMemory()
	l, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Record("m", "i", "d"); err != nil {
		t.Fatal(err)
	}
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 {
		t.Error("entries survived Clear")
	}

	reopened, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Len() != 0 {
		t.Error("Clear was not persisted")
	}
}

func TestAppendPersistFailureRollsBack(t *testing.T) {
	backend := kv.NewMemory()
	l, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Record("extensionMonitor", "🔍", "kept"); err != nil {
		t.Fatal(err)
	}

	backend.Fail = true
	if err := l.Record("extensionMonitor", "🔍", "lost"); !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("Record with failing backend: err = %v, want ErrUnavailable", err)
	}
	if got := l.Len(); got != 1 {
		t.Fatalf("failed append left %d entries in memory, want 1", got)
	}
	if got := l.Recent(0)[0].Description; got != "kept" {
		t.Errorf("newest entry = %q, want the one that persisted", got)
	}

	backend.Fail = false
	if err := l.Record("extensionMonitor", "🔍", "after"); err != nil {
		t.Fatal(err)
	}
	if got := l.Len(); got != 2 {
		t.Errorf("Len = %d after recovery, want 2", got)
	}
}

func TestClearPersistFailureRollsBack(t *testing.T) {
	backend := kv.NewMemory()
	l, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Record("extensionMonitor", "🔍", "kept"); err != nil {
		t.Fatal(err)
	}

	backend.Fail = true
	if err := l.Clear(); !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("Clear with failing backend: err = %v, want ErrUnavailable", err)
	}
	if got := l.Len(); got != 1 {
		t.Errorf("failed clear dropped in-memory entries: Len = %d, want 1", got)
	}
}
