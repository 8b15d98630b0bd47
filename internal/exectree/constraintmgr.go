package exectree

import (
	"github.com/cogumbreiro/apisan/internal/event"
	"github.com/cogumbreiro/apisan/internal/symbol"
)

// ConstraintMgr is an immutable parent-pointer chain mapping a
// constrained symbol name to its admissible interval list (spec.md §3).
// A nil *ConstraintMgr denotes the empty map (the tree root before any
// Assume has bound a symbol). Children share their parent's chain by
// reference; a node only allocates a new link when its own event is an
// Assume on a symbol not already bound by an ancestor (copy-on-write,
// spec.md §4.3).
type ConstraintMgr struct {
	parent    *ConstraintMgr
	symbol    string
	intervals []symbol.Interval
}

// Get looks up sym by walking the chain from the nearest ancestor
// outward; since a symbol is only ever bound once per path (first-Assume-
// wins, spec.md §4.3), the first match found while walking toward the
// root is also the only one a well-formed chain can ever return.
func (c *ConstraintMgr) Get(sym string) ([]symbol.Interval, bool) {
	for m := c; m != nil; m = m.parent {
		if m.symbol == sym {
			return m.intervals, true
		}
	}
	return nil, false
}

// Has reports whether sym is bound anywhere in the chain.
func (c *ConstraintMgr) Has(sym string) bool {
	_, ok := c.Get(sym)
	return ok
}

// extend returns a new chain binding sym to intervals, with c as parent.
// Does not mutate c (copy-on-write).
func (c *ConstraintMgr) extend(sym string, intervals []symbol.Interval) *ConstraintMgr {
	return &ConstraintMgr{parent: c, symbol: sym, intervals: intervals}
}

// Next computes the effective ConstraintMgr for a child node whose own
// event is ev, given the parent's ConstraintMgr c. This is the
// design-level rule of spec.md §4.3: only a fresh Assume on a
// not-yet-bound Constraint symbol allocates; everything else shares c by
// reference.
func Next(c *ConstraintMgr, ev *event.Event) *ConstraintMgr {
	if ev == nil || ev.Kind() != event.KindAssume {
		return c
	}
	cond := ev.Cond()
	if cond.Kind != symbol.KindConstraint {
		return c
	}
	if c.Has(cond.Name) {
		return c
	}
	return c.extend(cond.Name, cond.Intervals)
}
