// Package apicontext implements the per-checker Context aggregator and
// the frequency-based anomaly scoring algorithm shared by every checker
// (spec.md §3/§4.8): two Stores (total_uses, ctx_uses), fed during path
// traversal, merged across files, then queried for bugs.
package apicontext

import (
	"sort"

	"github.com/cogumbreiro/apisan/internal/store"
)

// Context aggregates, per API key, every code site that exercised it
// (Total) and, per observed context value, the subset of sites that
// exercised it under that context (CtxUses). V is the context-value
// type: MissingCheck uses a canonical string encoding of a constraint's
// interval list (internal/checker), ThreadSafety uses bool.
type Context[V comparable] struct {
	Total   *store.Store1[string]
	CtxUses *store.Store2[string, V]
}

// New returns an empty Context, ready to be fed during one file's path
// traversal.
func New[V comparable]() *Context[V] {
	return &Context[V]{
		Total:   store.NewStore1[string](),
		CtxUses: store.NewStore2[string, V](),
	}
}

// Add records one observation of key at code. If ctx is non-nil, the
// site is also recorded under that context value — spec.md §4.6: "if no
// constraint, the ctx value is None (still counted in total_uses, not in
// ctx_uses)".
func (c *Context[V]) Add(key string, ctx *V, code string) {
	if ctx != nil {
		c.CtxUses.Add(key, *ctx, code)
	}
	c.Total.Add(key, code)
}

// Merge unions other into c. Associative and commutative (spec.md §5),
// since the underlying Store merge is leaf-wise set union.
func (c *Context[V]) Merge(other *Context[V]) {
	c.Total.Merge(other.Total)
	c.CtxUses.Merge(other.CtxUses)
}

// BugReport is one deviating call site, scored against the majority
// context for its API key (spec.md §3).
type BugReport[V any] struct {
	Score      float64
	Code       string
	Key        string
	Ctx        V
	References []string // conforming sites for this (key, ctx); never mutated (spec.md §9 open question)
}

// Bugs implements the generic scoring algorithm of spec.md §4.8: for
// each (key, ctx) pair with score = |ctx_uses[key][ctx]| / |total_uses[key]|
// satisfying threshold <= score < 1, every non-conforming site is
// reported once, deduplicated across context values within this call via
// an "added" set (mirrors original_source's Context.get_bugs).
func (c *Context[V]) Bugs(threshold float64) []BugReport[V] {
	added := make(map[string]struct{})
	var bugs []BugReport[V]

	for _, key := range c.CtxUses.Keys() {
		total := c.Total.Peek(key)
		sub := c.CtxUses.Peek(key)
		for _, ctx := range sub.Keys() {
			codes := sub.Peek(ctx)
			score := float64(codes.Len()) / float64(total.Len())
			if score < threshold || score == 1 {
				continue
			}
			diff := total.Difference(codes)
			refs := codes.Sorted()
			for _, bug := range diff.Sorted() {
				if _, seen := added[bug]; seen {
					continue
				}
				added[bug] = struct{}{}
				bugs = append(bugs, BugReport[V]{
					Score:      score,
					Code:       bug,
					Key:        key,
					Ctx:        ctx,
					References: refs,
				})
			}
		}
	}
	return bugs
}

// Rank sorts bugs by descending score, stable on insertion order for
// ties (spec.md §4.8).
func Rank[V any](bugs []BugReport[V]) []BugReport[V] {
	out := make([]BugReport[V], len(bugs))
	copy(out, bugs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
