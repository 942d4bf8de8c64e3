package catalog

import "extguard/internal/model"

// Record describes one permission: its risk tier, score weight, and a
// human-readable explanation shown in notifications and reports.
type Record struct {
	ID          string     `yaml:"id"`
	Tier        model.Tier `yaml:"tier"`
	Weight      int        `yaml:"weight"`
	Explanation string     `yaml:"explanation"`
}

// Tier weights. A permission's weight defaults to its tier's weight
// unless a record overrides it explicitly.
const (
	weightCritical = 10
	weightHigh     = 7
	weightMedium   = 4
	weightLow      = 1

	// defaultWeight is the penalty for permissions absent from the
	// catalog. Never zero: an unrecognized permission is evidence of an
	// unreviewed API surface, not of safety.
	defaultWeight = 5
)

// TierWeight returns the canonical score weight for a tier.
func TierWeight(t model.Tier) int {
	switch t {
	case model.TierCritical:
		return weightCritical
	case model.TierHigh:
		return weightHigh
	case model.TierMedium:
		return weightMedium
	case model.TierLow:
		return weightLow
	default:
		return defaultWeight
	}
}

// Catalog is the immutable permission lookup table, loaded once at
// process start.
type Catalog struct {
	records map[string]Record
}

// New builds a catalog from a list of records. Records with a zero
// weight inherit their tier's weight.
func New(records []Record) *Catalog {
	m := make(map[string]Record, len(records))
	for _, r := range records {
		if r.Weight == 0 {
			r.Weight = TierWeight(r.Tier)
		}
		m[r.ID] = r
	}
	return &Catalog{records: m}
}

// Default returns the catalog built from the builtin permission table.
func Default() *Catalog {
	return New(builtinRecords)
}

// Lookup returns the record for a permission id. The second return is
// false for permissions not in the catalog; callers must charge
// DefaultWeight for those, never zero.
func (c *Catalog) Lookup(id string) (Record, bool) {
	r, ok := c.records[id]
	return r, ok
}

// DefaultWeight is the fixed penalty for unknown permissions.
func (c *Catalog) DefaultWeight() int {
	return defaultWeight
}

// Explain returns the explanation for a permission, or a generic line
// for permissions the catalog does not know.
func (c *Catalog) Explain(id string) string {
	if r, ok := c.records[id]; ok && r.Explanation != "" {
		return r.Explanation
	}
	return "Requests " + id + " permission"
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}
