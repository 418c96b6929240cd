package world

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// ErrNotSingleDifference is returned by SingleSymbolDifference when two
// conditions do not differ by exactly one symbol.
var ErrNotSingleDifference = errors.New("conditions do not differ by exactly one symbol")

// Condition is the set of symbols a player must hold. The empty condition
// is always satisfied. Conditions are immutable; And returns a new one.
type Condition struct {
	symbols *mapset.Set[Symbol]
}

// NewCondition returns a condition requiring all of the given symbols.
func NewCondition(symbols ...Symbol) Condition {
	set := mapset.New[Symbol]()
	for _, s := range symbols {
		set.Put(s)
	}
	return Condition{symbols: &set}
}

// And returns a new condition that also requires sym.
func (c Condition) And(sym Symbol) Condition {
	out := NewCondition(sym)
	c.each(out.symbols.Put)
	return out
}

// Has returns true if sym is required
func (c Condition) Has(sym Symbol) bool {
	return c.Size() > 0 && c.symbols.Has(sym)
}

// Size returns the number of required symbols
func (c Condition) Size() int {
	if c.symbols == nil {
		return 0
	}
	return c.symbols.Size()
}

// Implies returns true if holding what c requires also satisfies other,
// i.e. c's symbols are a superset of other's.
func (c Condition) Implies(other Condition) bool {
	implied := true
	other.each(func(s Symbol) {
		if !c.Has(s) {
			implied = false
		}
	})
	return implied
}

// Equal returns true if both conditions require the same symbols
func (c Condition) Equal(other Condition) bool {
	return c.Implies(other) && other.Implies(c)
}

// Difference returns the symbols present in exactly one of the two
// conditions, sorted.
func (c Condition) Difference(other Condition) []Symbol {
	var diff []Symbol
	c.each(func(s Symbol) {
		if !other.Has(s) {
			diff = append(diff, s)
		}
	})
	other.each(func(s Symbol) {
		if !c.Has(s) {
			diff = append(diff, s)
		}
	})
	slices.Sort(diff)
	return diff
}

// SingleSymbolDifference returns the one symbol by which the two conditions
// differ. Callers must have established that they differ by exactly one
// symbol; anything else is reported as ErrNotSingleDifference.
func (c Condition) SingleSymbolDifference(other Condition) (Symbol, error) {
	diff := c.Difference(other)
	if len(diff) != 1 {
		return 0, fmt.Errorf("%w: %v vs %v (%d differ)", ErrNotSingleDifference, c, other, len(diff))
	}
	return diff[0], nil
}

// Symbols returns the required symbols in ascending order
func (c Condition) Symbols() []Symbol {
	out := make([]Symbol, 0, c.Size())
	c.each(func(s Symbol) { out = append(out, s) })
	slices.Sort(out)
	return out
}

// String returns the symbols joined with "&", or "true" when empty.
func (c Condition) String() string {
	syms := c.Symbols()
	if len(syms) == 0 {
		return "true"
	}
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = s.String()
	}
	return strings.Join(parts, "&")
}

func (c Condition) each(fn func(Symbol)) {
	if c.Size() == 0 {
		return
	}
	c.symbols.Each(fn)
}
