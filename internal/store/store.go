// Package store keeps the last-known snapshot per extension id. It is
// the sole writer of the snapshot records in the KV layer; comparison
// against previous snapshots is the creep classifier's job, fed by
// Put's return value.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"extguard/internal/kv"
	"extguard/internal/model"
)

// ErrUnavailable wraps KV failures. Callers must not treat it as "no
// prior snapshot" — that would mask real creep.
var ErrUnavailable = errors.New("snapshot store unavailable")

const keyPrefix = "snapshot/"

// Store is the extension state store.
type Store struct {
	mu sync.Mutex
	kv kv.Store
}

// New creates a snapshot store over a KV backend.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Put replaces the stored snapshot for snap.ID and returns the
// previous one, or nil on first sight. The read-previous-and-replace
// pair runs under one lock hold: two concurrent scans of the same id
// cannot both observe the same previous snapshot.
//
// A stored record that fails to parse is treated as first sight (nil
// previous) with a diagnostic, never as a fatal error.
func (s *Store) Put(snap model.Snapshot) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.read(snap.ID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}
	if err := s.kv.Set(keyPrefix+snap.ID, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return prev, nil
}

// Remove deletes the snapshot for id and returns what was stored, or
// nil if the id was unknown. Used on uninstall.
func (s *Store) Remove(id string) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.read(id)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Delete(keyPrefix + id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return prev, nil
}

// Get returns the stored snapshot for id, or nil if absent.
func (s *Store) Get(id string) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// GetAll returns every stored snapshot, ordered by extension id.
// Ordering is store-defined and carries no meaning.
func (s *Store) GetAll() ([]model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.kv.List(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snaps := make([]model.Snapshot, 0, len(records))
	for key, data := range records {
		var snap model.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Fprintf(os.Stderr, "store: skipping malformed snapshot %s: %v\n",
				strings.TrimPrefix(key, keyPrefix), err)
			continue
		}
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })
	return snaps, nil
}

// read loads one snapshot while the lock is held. Malformed stored
// bytes degrade to first sight rather than aborting the scan.
func (s *Store) read(id string) (*model.Snapshot, error) {
	data, ok, err := s.kv.Get(keyPrefix + id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return nil, nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "store: malformed snapshot %s, treating as first sight: %v\n", id, err)
		return nil, nil
	}
	return &snap, nil
}
