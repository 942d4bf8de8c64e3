// Package inventory models the host platform's extension inventory:
// the enumeration of installed extension-like items and the lifecycle
// events it raises. Payloads are loosely shaped on the wire, so every
// field with collection type is defaulted at this boundary — scoring
// logic never sees a nil permission slice.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrUnavailable indicates the host inventory could not be enumerated.
// A full scan aborts on it, leaving prior snapshots untouched.
var ErrUnavailable = errors.New("inventory unavailable")

// TypeTheme marks items that are skipped during scans.
const TypeTheme = "theme"

// Item is one installed extension-like item as reported by the host.
type Item struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Enabled         bool     `json:"enabled"`
	Permissions     []string `json:"permissions"`
	HostPermissions []string `json:"host_permissions"`
	Type            string   `json:"type"`
}

// Normalize applies boundary defaults: absent permission arrays become
// empty, an absent type becomes "extension".
func (it *Item) Normalize() {
	if it.Permissions == nil {
		it.Permissions = []string{}
	}
	if it.HostPermissions == nil {
		it.HostPermissions = []string{}
	}
	if it.Type == "" {
		it.Type = "extension"
	}
}

// Validate rejects items the core cannot process.
func (it *Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("inventory item missing id")
	}
	return nil
}

// Source enumerates the installed inventory.
type Source interface {
	List() ([]Item, error)
}

// FileSource reads the inventory from a JSON document maintained by
// the platform adapter: either a bare array of items or
// {"extensions": [...]}.
type FileSource struct {
	Path string
}

type inventoryFile struct {
	Extensions []Item `json:"extensions"`
}

func (f FileSource) List() ([]Item, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.Path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped inventoryFile
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, f.Path, err)
		}
		items = wrapped.Extensions
	}

	for i := range items {
		items[i].Normalize()
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, f.Path, err)
		}
	}
	return items, nil
}

// StaticSource serves a fixed item list. Tests and demos.
type StaticSource struct {
	Items []Item
	Err   error
}

func (s StaticSource) List() ([]Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		items[i].Normalize()
	}
	return items, nil
}
