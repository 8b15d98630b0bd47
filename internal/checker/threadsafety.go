package checker

import (
	"regexp"

	"github.com/cogumbreiro/apisan/internal/apicontext"
	"github.com/cogumbreiro/apisan/internal/cache"
	"github.com/cogumbreiro/apisan/internal/event"
	"github.com/cogumbreiro/apisan/internal/exectree"
	"github.com/cogumbreiro/apisan/internal/store"
)

var (
	lockRE   = regexp.MustCompile(`^pthread_mutex_lock`)
	unlockRE = regexp.MustCompile(`^pthread_mutex_unlock`)
)

func isLock(name string) bool   { return lockRE.MatchString(name) }
func isUnlock(name string) bool { return unlockRE.MatchString(name) }

// ThreadSafety flags calls made without the mutex held, relative to the
// majority locked/unlocked usage for that call name (spec.md §4.7),
// grounded on original_source's check/thread.py and parse/explorer.py
// (is_lock/is_unlock/LOCK_RE/UNLOCK_RE).
type ThreadSafety struct {
	Threshold float64
}

// NewThreadSafety builds a ThreadSafety checker scoring at the given
// threshold.
func NewThreadSafety(threshold float64) *ThreadSafety {
	return &ThreadSafety{Threshold: threshold}
}

func (c *ThreadSafety) Name() string           { return "thread" }
func (c *ThreadSafety) ParseConstraints() bool { return false }

type threadContext struct {
	inner *apicontext.Context[bool]
}

func (t *threadContext) Merge(other Context) {
	t.inner.Merge(other.(*threadContext).inner)
}

// Bugs implements ThreadSafetyContext.get_bugs from check/thread.py,
// which differs from the generic scoring algorithm (apicontext.Bugs) in
// two ways this port preserves exactly: only truthy (locked) contexts
// ever subtract from the running diff, and a key's remaining diff is
// accumulated across every qualifying context before being emitted, so a
// bug's reported score is that of the last qualifying context that still
// left it unexplained.
func (t *threadContext) Bugs(threshold float64) []Report {
	var bugs []Report
	for _, key := range t.inner.CtxUses.Keys() {
		total := t.inner.Total.Peek(key)
		diff := store.NewCodeSet(total.Sorted()...)
		scores := make(map[string]float64)

		sub := t.inner.CtxUses.Peek(key)
		for _, ctx := range sub.Keys() {
			codes := sub.Peek(ctx)
			score := float64(codes.Len()) / float64(total.Len())
			if !ctx || score < threshold || score == 1 {
				continue
			}
			diff = diff.Difference(codes)
			for _, bug := range diff.Sorted() {
				scores[bug] = score
			}
		}

		if diff.Len() == total.Len() {
			continue
		}
		added := make(map[string]struct{})
		for _, bug := range diff.Sorted() {
			if _, seen := added[bug]; seen {
				continue
			}
			added[bug] = struct{}{}
			bugs = append(bugs, Report{Score: scores[bug], Code: bug, Key: key, Ctx: true})
		}
	}
	return bugs
}

// Process maintains a per-path mutex_held flag, flipped by lock/unlock
// calls, and records every other call under the held/not-held context.
func (c *ThreadSafety) Process(tree *exectree.ExecTree) Context {
	ctx := apicontext.New[bool]()
	for path := range tree.Paths() {
		held := false
		for _, node := range path {
			ev := node.Event
			if ev.Kind() != event.KindCall {
				continue
			}
			name := ev.CallName()
			switch {
			case isLock(name):
				held = true
			case isUnlock(name):
				held = false
			default:
				ctx.Add(name, &held, ev.Code())
			}
		}
	}
	return &threadContext{inner: ctx}
}

// Merge unions every per-file Context and returns the ranked bug list.
func (c *ThreadSafety) Merge(ctxs []Context) []Report {
	if len(ctxs) == 0 {
		return nil
	}
	acc := ctxs[0].(*threadContext)
	for _, other := range ctxs[1:] {
		acc.Merge(other)
	}
	return Rank(acc.Bugs(c.Threshold))
}

// LoadCache reads a previously cached per-file Context for inputPath, if
// one exists, is fresh, and skipCache is not set (spec.md §4.9).
func (c *ThreadSafety) LoadCache(inputPath string, skipCache bool) (Context, bool) {
	inner, ok := cache.Load[bool](inputPath, c.Name(), skipCache)
	if !ok {
		return nil, false
	}
	return &threadContext{inner: inner}, true
}

// SaveCache opportunistically persists ctx for inputPath (spec.md §4.9).
func (c *ThreadSafety) SaveCache(inputPath string, skipCache bool, ctx Context) {
	cache.Store(inputPath, c.Name(), ctx.(*threadContext).inner, skipCache)
}
