package checker

import (
	"github.com/cogumbreiro/apisan/internal/apicontext"
	"github.com/cogumbreiro/apisan/internal/cache"
	"github.com/cogumbreiro/apisan/internal/event"
	"github.com/cogumbreiro/apisan/internal/exectree"
	"github.com/cogumbreiro/apisan/internal/symbol"
)

// MissingCheck flags API calls whose return value is usually checked by a
// constraining Assume but occasionally isn't (spec.md §4.6). The
// check/missing.py source this checker ports was filtered out of the
// retrieval pack (DESIGN.md notes this); the return-symbol matching below
// is reconstructed directly from spec.md §3's event model: a Call is
// paired with the Return event immediately following it in the path, and
// the Return's own (ID) symbol is the name later bound by Assume.
type MissingCheck struct {
	Threshold float64
}

// NewMissingCheck builds a MissingCheck checker scoring at the given
// threshold.
func NewMissingCheck(threshold float64) *MissingCheck {
	return &MissingCheck{Threshold: threshold}
}

func (c *MissingCheck) Name() string           { return "missing" }
func (c *MissingCheck) ParseConstraints() bool { return true }

// missingContext adapts apicontext.Context[string] (the context value is
// the canonical encodeIntervals key) to the checker-agnostic Context
// interface.
type missingContext struct {
	inner *apicontext.Context[string]
}

func (m *missingContext) Merge(other Context) {
	m.inner.Merge(other.(*missingContext).inner)
}

func (m *missingContext) Bugs(threshold float64) []Report {
	raw := m.inner.Bugs(threshold)
	out := make([]Report, len(raw))
	for i, b := range raw {
		out[i] = Report{
			Score:      b.Score,
			Code:       b.Code,
			Key:        b.Key,
			Ctx:        decodeIntervals(b.Ctx),
			References: b.References,
		}
	}
	return out
}

// Process drives the path iterator over tree, recording one (api_name,
// constraint_or_none, code) observation per Call event.
func (c *MissingCheck) Process(tree *exectree.ExecTree) Context {
	ctx := apicontext.New[string]()
	for path := range tree.Paths() {
		leafCMgr := path[len(path)-1].CMgr
		for i, node := range path {
			ev := node.Event
			if ev.Kind() != event.KindCall {
				continue
			}
			name := ev.CallName()
			if name == "" {
				continue
			}

			var ctxVal *string
			if i+1 < len(path) && path[i+1].Event.Kind() == event.KindReturn {
				retSym := path[i+1].Event.Call()
				if retSym.Kind == symbol.KindID {
					if intervals, ok := leafCMgr.Get(retSym.Name); ok {
						enc := encodeIntervals(intervals)
						ctxVal = &enc
					}
				}
			}
			ctx.Add(name, ctxVal, ev.Code())
		}
	}
	return &missingContext{inner: ctx}
}

// Merge unions every per-file Context and returns the ranked bug list.
func (c *MissingCheck) Merge(ctxs []Context) []Report {
	if len(ctxs) == 0 {
		return nil
	}
	acc := ctxs[0].(*missingContext)
	for _, other := range ctxs[1:] {
		acc.Merge(other)
	}
	return Rank(acc.Bugs(c.Threshold))
}

// LoadCache reads a previously cached per-file Context for inputPath, if
// one exists, is fresh, and skipCache is not set (spec.md §4.9).
func (c *MissingCheck) LoadCache(inputPath string, skipCache bool) (Context, bool) {
	inner, ok := cache.Load[string](inputPath, c.Name(), skipCache)
	if !ok {
		return nil, false
	}
	return &missingContext{inner: inner}, true
}

// SaveCache opportunistically persists ctx for inputPath (spec.md §4.9).
func (c *MissingCheck) SaveCache(inputPath string, skipCache bool, ctx Context) {
	cache.Store(inputPath, c.Name(), ctx.(*missingContext).inner, skipCache)
}
