// Package activity keeps the bounded, newest-first audit trail of
// notable events. Pure history: nothing consults it for control
// decisions.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"extguard/internal/kv"
)

// Capacity is the maximum number of retained entries. Appending past
// it evicts from the tail — FIFO by position, not by age.
const Capacity = 200

const storeKey = "activityLog"

// Entry is one line of user-facing history.
type Entry struct {
	Module      string    `json:"module"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Log is a fixed-capacity deque of entries, newest first, mirrored to
// the KV layer on every mutation.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	kv      kv.Store
	now     func() time.Time
}

// Open loads the persisted log from the KV backend. A malformed stored
// record starts an empty log with a diagnostic; an unreachable backend
// is a real error.
func Open(backend kv.Store) (*Log, error) {
	l := &Log{kv: backend, now: time.Now}

	data, ok, err := backend.Get(storeKey)
	if err != nil {
		return nil, fmt.Errorf("activity: load log: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &l.entries); err != nil {
			fmt.Fprintf(os.Stderr, "activity: malformed stored log, starting fresh: %v\n", err)
			l.entries = nil
		}
		if len(l.entries) > Capacity {
			l.entries = l.entries[:Capacity]
		}
	}
	return l, nil
}

// SetClock overrides the time source. Tests only.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// Append inserts an entry at the front, stamping it if its timestamp
// is zero, then truncates to capacity and persists.
func (l *Log) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}

	entries := append([]Entry{entry}, l.entries...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	// Persist before adopting, so a storage failure leaves the
	// in-memory deque matching what is actually on disk.
	if err := l.persist(entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}

// Record is a convenience for Append with the common fields.
func (l *Log) Record(module, icon, description string) error {
	return l.Append(Entry{Module: module, Icon: icon, Description: description})
}

// Recent returns up to limit entries, newest first. limit <= 0 means
// all retained entries.
func (l *Log) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops all entries and persists the empty log.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.persist(nil); err != nil {
		return err
	}
	l.entries = nil
	return nil
}

func (l *Log) persist(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("activity: encode log: %w", err)
	}
	if err := l.kv.Set(storeKey, data); err != nil {
		return fmt.Errorf("activity: persist log: %w", err)
	}
	return nil
}
