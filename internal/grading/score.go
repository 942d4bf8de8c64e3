package grading

import (
	"extguard/internal/catalog"
	"extguard/internal/model"
)

// Engine turns permission sets into scores and grades. It is pure:
// it owns no mutable state and the same inputs always produce the
// same outputs under a given catalog and ladder.
type Engine struct {
	cat    *catalog.Catalog
	ladder Ladder
}

// NewEngine creates a grading engine over a catalog with the canonical
// ladder.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat, ladder: DefaultLadder()}
}

// Score sums catalog weights over the union of API and host
// permissions. Duplicates count once. Permissions absent from the
// catalog are charged the catalog's default penalty, never zero.
// The sum is commutative, so the result is independent of the order
// in which the platform reported the permissions.
func (e *Engine) Score(permissions, hostPermissions []string) int {
	seen := make(map[string]bool, len(permissions)+len(hostPermissions))
	score := 0
	for _, set := range [][]string{permissions, hostPermissions} {
		for _, p := range set {
			if seen[p] {
				continue
			}
			seen[p] = true
			if r, ok := e.cat.Lookup(p); ok {
				score += r.Weight
			} else {
				score += e.cat.DefaultWeight()
			}
		}
	}
	return score
}

// Grade maps a score through the ladder.
func (e *Engine) Grade(score int) model.Grade {
	return e.ladder.Grade(score)
}

// Catalog exposes the engine's catalog for explanation lookups.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}
