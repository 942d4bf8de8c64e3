package grading

import "extguard/internal/model"

// Rung is one boundary in the grade ladder: scores up to and including
// Max map to Grade.
type Rung struct {
	Max   int
	Grade model.Grade
}

// Ladder is an ordered threshold table evaluated top-down, first match
// wins, with a catch-all F for scores beyond the last rung. Rungs must
// be in ascending Max order and descending grade order.
type Ladder []Rung

// DefaultLadder returns the canonical five-grade ladder.
func DefaultLadder() Ladder {
	return Ladder{
		{Max: 5, Grade: model.GradeA},
		{Max: 15, Grade: model.GradeB},
		{Max: 30, Grade: model.GradeC},
		{Max: 50, Grade: model.GradeD},
	}
}

// Grade maps a score to a letter grade. Defined for all scores >= 0;
// negative scores clamp to the first rung.
func (l Ladder) Grade(score int) model.Grade {
	for _, r := range l {
		if score <= r.Max {
			return r.Grade
		}
	}
	return model.GradeF
}
