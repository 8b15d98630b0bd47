// Package checker implements the Checker strategy interface (spec.md
// §4.5) and its two concrete strategies, MissingCheck (§4.6) and
// ThreadSafety (§4.7), grounded on original_source's
// analyzer/apisan/check/checker.py and check/thread.py.
package checker

import (
	"sort"

	"github.com/cogumbreiro/apisan/internal/exectree"
)

// Report is a checker-agnostic rendering of one apicontext.BugReport: Ctx
// holds the checker-specific context value (bool for ThreadSafety,
// []symbol.Interval for MissingCheck) for the report package to
// humanize without this package depending on it.
type Report struct {
	Score      float64
	Code       string
	Key        string
	Ctx        any
	References []string
}

// Context is the checker-agnostic view of apicontext.Context[V]: mergeable
// and scoreable without this package's callers needing to know V.
type Context interface {
	Merge(other Context)
	Bugs(threshold float64) []Report
}

// Checker is the strategy interface every checker implements (spec.md
// §4.5): a stable Name (used as the cache-key suffix), an optional
// ParseConstraints flag, a per-tree Process, a cross-file Merge that
// ranks the final bug list, and cache load/save hooks so internal/explorer
// can cache per-file results without depending on each checker's
// context-value type (spec.md §4.9).
type Checker interface {
	Name() string
	ParseConstraints() bool
	Process(tree *exectree.ExecTree) Context
	Merge(ctxs []Context) []Report
	LoadCache(inputPath string, skipCache bool) (Context, bool)
	SaveCache(inputPath string, skipCache bool, ctx Context)
}

// Rank sorts reports by descending score, stable on ties (spec.md §4.8).
func Rank(reports []Report) []Report {
	out := make([]Report, len(reports))
	copy(out, reports)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
