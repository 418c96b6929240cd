package constraints

import (
	"keydungeon/pkg/engine/world"
	"keydungeon/pkg/game/analysis"
)

// Acceptance is a predicate over a finished dungeon
type Acceptance func(dungeon world.View) bool

// All accepts a dungeon only if every check accepts it
func All(checks ...Acceptance) Acceptance {
	return func(d world.View) bool {
		for _, check := range checks {
			if !check(d) {
				return false
			}
		}
		return true
	}
}

// RequireSolvable accepts dungeons whose keys can all be collected in order
// and whose rooms are all reachable.
func RequireSolvable() Acceptance {
	return func(d world.View) bool {
		return analysis.Solve(d).Solvable()
	}
}

// MinDeadEnds accepts dungeons with at least n dead-end rooms
func MinDeadEnds(n int) Acceptance {
	return func(d world.View) bool {
		return analysis.DeadEnds(d) >= n
	}
}

// MinRoomsPerLevel accepts dungeons where every key level has at least n rooms
func MinRoomsPerLevel(n int) Acceptance {
	return func(d world.View) bool {
		for _, count := range analysis.RoomsPerLevel(d) {
			if count < n {
				return false
			}
		}
		return true
	}
}

// withAcceptance decorates a Constraints with extra acceptance checks
type withAcceptance struct {
	Constraints
	check Acceptance
}

// WithAcceptance returns base with checks added to its acceptance test.
// base.IsAcceptable still runs first.
func WithAcceptance(base Constraints, checks ...Acceptance) Constraints {
	return &withAcceptance{Constraints: base, check: All(checks...)}
}

// IsAcceptable runs the base verdict, then the extra checks
func (w *withAcceptance) IsAcceptable(d world.View) bool {
	return w.Constraints.IsAcceptable(d) && w.check(d)
}
