// Package exectree implements the lazy execution tree (spec.md §3/§4.3):
// ExecNode wraps one Event plus its children and effective ConstraintMgr;
// ExecTree exposes a bounded-memory, restartable DFS path iterator
// (spec.md §4.4).
package exectree

import (
	"iter"

	"github.com/cogumbreiro/apisan/internal/event"
)

// ExecNode owns exactly one Event, zero or more children, and a
// reference to its effective ConstraintMgr (spec.md §3). EOP events mark
// leaves; neither NewNode nor package trace's construction rejects an EOP
// node that has children, and Paths ends a path at the first EOP without
// visiting any such children.
type ExecNode struct {
	Event    *event.Event
	Children []*ExecNode
	CMgr     *ConstraintMgr
}

// NewNode builds a leaf-shaped ExecNode; Children is populated by the
// caller once it has recursively built them (construction is iterative
// in package trace to bound stack depth on large traces, spec.md §4.3).
func NewNode(ev *event.Event, cmgr *ConstraintMgr) *ExecNode {
	return &ExecNode{Event: ev, CMgr: cmgr}
}

// ExecTree holds a root ExecNode. Iterating it (Paths) produces the lazy
// sequence of root-to-leaf paths; restartable and finite (spec.md §3).
type ExecTree struct {
	Root *ExecNode
}

// New wraps root in an ExecTree.
func New(root *ExecNode) *ExecTree {
	return &ExecTree{Root: root}
}

// frame tracks one level's child cursor during DFS.
type frame struct {
	idx int
}

// Paths yields every root-to-leaf path (each path an ordered node slice
// ending in an EOP event) via an explicit-stack DFS — spec.md §4.4:
// O(depth) memory overhead beyond the tree itself, children visited in
// document order, restartable since each call builds a fresh stack.
func (t *ExecTree) Paths() iter.Seq[[]*ExecNode] {
	return func(yield func([]*ExecNode) bool) {
		if t == nil || t.Root == nil {
			return
		}
		nodes := []*ExecNode{t.Root}
		frames := []frame{{idx: 0}}

		for len(nodes) > 0 {
			node := nodes[len(nodes)-1]
			top := &frames[len(frames)-1]

			if node.Event != nil && node.Event.Kind() == event.KindEOP {
				path := make([]*ExecNode, len(nodes))
				copy(path, nodes)
				if !yield(path) {
					return
				}
				nodes = nodes[:len(nodes)-1]
				frames = frames[:len(frames)-1]
				continue
			}

			if top.idx < len(node.Children) {
				child := node.Children[top.idx]
				top.idx++
				nodes = append(nodes, child)
				frames = append(frames, frame{idx: 0})
			} else {
				nodes = nodes[:len(nodes)-1]
				frames = frames[:len(frames)-1]
			}
		}
	}
}
