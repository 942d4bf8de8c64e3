// Package kv is the durable key-value layer beneath the state store,
// settings, and activity log. Implementations must distinguish "key
// absent" from "storage unreachable": callers never treat a failed
// read as empty state.
package kv

import "errors"

// ErrUnavailable indicates the persistence layer could not be reached.
// Callers must propagate it, not assume empty state.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the durable key-value contract the core requires.
type Store interface {
	// Get returns the value for key. The bool is false when the key
	// is absent; an error means the read itself failed.
	Get(key string) ([]byte, bool, error)

	// Set durably writes the value for key.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// List returns all key/value pairs whose key starts with prefix.
	List(prefix string) (map[string][]byte, error)

	// Close releases underlying resources.
	Close() error
}
