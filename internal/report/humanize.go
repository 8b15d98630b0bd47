// Package report renders checker.Report values as the single-line bug
// reports described in spec.md §4.10: `{score%} {code} '{key}' {ctx_desc}
// {references}{\n{source_line}}?`.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cogumbreiro/apisan/internal/symbol"
)

// formatBound renders one interval bound, preferring a recognized limit
// constant's name over its raw number (spec.md §4.10: "recognized limit
// constants are rendered by name").
func formatBound(v int64) string {
	if name, ok := symbol.NameForValue(v); ok {
		return name
	}
	return strconv.FormatInt(v, 10)
}

// gap reports whether ivs is exactly two intervals spanning every
// representable value of one of the standard integer widths with a
// single excluded value, returning that value (spec.md §4.10/§8 scenario
// 5: `!= 0` for `[(INT32_MIN,-1),(1,INT32_MAX)]`).
func gap(ivs []symbol.Interval) (int64, bool) {
	if len(ivs) != 2 {
		return 0, false
	}
	lo, hi := ivs[0], ivs[1]
	if hi.Lo-lo.Hi != 2 {
		return 0, false
	}
	for _, w := range symbol.LimitOrder() {
		min, max, ok := widthBounds(w.Min, w.Max)
		if !ok {
			continue
		}
		if lo.Lo == min && hi.Hi == max {
			return lo.Hi + 1, true
		}
	}
	return 0, false
}

// widthBounds resolves one symbol.LimitOrder() entry to its actual
// (min, max) pair. Unsigned widths store the same MAX name twice
// (symbol.limitOrder's "implicit Lo=0" entries) since there is no
// UINT*_MIN constant to name the lower bound by; for those, the lower
// bound is 0 rather than the MAX constant's own value.
func widthBounds(minName, maxName string) (int64, int64, bool) {
	max, ok := symbol.LimitValue(maxName)
	if !ok {
		return 0, 0, false
	}
	if minName == maxName {
		return 0, max, true
	}
	min, ok := symbol.LimitValue(minName)
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// humanizeIntervals implements spec.md §4.10's ctx_desc rules for
// MissingCheck: `== N` for a single point, `!= G` for a full-range-minus-
// one-gap pair, `in {[lo,hi], ...}` otherwise.
func humanizeIntervals(ivs []symbol.Interval) string {
	if len(ivs) == 0 {
		return "in {}"
	}
	if len(ivs) == 1 && ivs[0].Lo == ivs[0].Hi {
		return "== " + formatBound(ivs[0].Lo)
	}
	if g, ok := gap(ivs); ok {
		return "!= " + formatBound(g)
	}
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = fmt.Sprintf("[%s,%s]", formatBound(iv.Lo), formatBound(iv.Hi))
	}
	return "in {" + strings.Join(parts, ", ") + "}"
}

// HumanizeCtx renders a checker.Report.Ctx value. MissingCheck's context
// is []symbol.Interval and gets the full spec.md §4.10 treatment;
// anything else (ThreadSafety's bool) falls back to its plain %v form,
// matching original_source's BugReport.__repr__ ("ctx=%s" on whatever
// Python object ctx happens to be).
func HumanizeCtx(ctx any) string {
	if ivs, ok := ctx.([]symbol.Interval); ok {
		return humanizeIntervals(ivs)
	}
	return fmt.Sprintf("%v", ctx)
}
