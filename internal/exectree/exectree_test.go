package exectree

import (
	"testing"

	"github.com/cogumbreiro/apisan/internal/event"
	"github.com/cogumbreiro/apisan/internal/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLinear builds root -> a -> b -> EOP, one child per level.
func buildLinear() *ExecTree {
	eop := NewNode(event.NewEOP(), nil)
	b := NewNode(event.NewCall("b()", "f:f:3"), nil)
	b.Children = []*ExecNode{eop}
	a := NewNode(event.NewCall("a()", "f:f:2"), nil)
	a.Children = []*ExecNode{b}
	root := NewNode(event.NewCall("root()", "f:f:1"), nil)
	root.Children = []*ExecNode{a}
	return New(root)
}

func TestPathsYieldsSinglePathForLinearTree(t *testing.T) {
	tree := buildLinear()
	var paths [][]*ExecNode
	for p := range tree.Paths() {
		paths = append(paths, p)
	}
	require.Len(t, paths, 1)
	assert.Len(t, paths[0], 4)
	assert.Equal(t, event.KindEOP, paths[0][3].Event.Kind())
}

func TestPathsRestartable(t *testing.T) {
	tree := buildLinear()
	var first, second int
	for range tree.Paths() {
		first++
	}
	for range tree.Paths() {
		second++
	}
	assert.Equal(t, first, second)
	assert.Equal(t, 1, first)
}

// buildBranching builds root -> {left, right}, left -> EOP, right -> EOP.
func buildBranching() *ExecTree {
	leftEOP := NewNode(event.NewEOP(), nil)
	left := NewNode(event.NewCall("left()", ""), nil)
	left.Children = []*ExecNode{leftEOP}

	rightEOP := NewNode(event.NewEOP(), nil)
	right := NewNode(event.NewCall("right()", ""), nil)
	right.Children = []*ExecNode{rightEOP}

	root := NewNode(event.NewCall("root()", ""), nil)
	root.Children = []*ExecNode{left, right}
	return New(root)
}

func TestPathCompletenessOnePathPerLeaf(t *testing.T) {
	tree := buildBranching()
	var paths [][]*ExecNode
	for p := range tree.Paths() {
		paths = append(paths, p)
	}
	require.Len(t, paths, 2)
	// document order: left before right.
	assert.Equal(t, "left", paths[0][1].Event.CallName())
	assert.Equal(t, "right", paths[1][1].Event.CallName())
}

func TestPathsEarlyStopViaBreak(t *testing.T) {
	tree := buildBranching()
	count := 0
	for range tree.Paths() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestConstraintMgrFirstAssumeWins(t *testing.T) {
	var c *ConstraintMgr
	assume1 := event.NewAssume("ret: [0,0]")
	c = Next(c, assume1)
	require.True(t, c.Has("ret"))
	iv, _ := c.Get("ret")
	assert.Equal(t, []symbol.Interval{{Lo: 0, Hi: 0}}, iv)

	// a second Assume on the same symbol must not override the first.
	assume2 := event.NewAssume("ret: [1,1]")
	c2 := Next(c, assume2)
	iv2, _ := c2.Get("ret")
	assert.Equal(t, []symbol.Interval{{Lo: 0, Hi: 0}}, iv2, "first Assume must win")
}

func TestConstraintMgrMonotonic(t *testing.T) {
	var root *ConstraintMgr
	child := Next(root, event.NewAssume("x: [0,0]"))
	grandchild := Next(child, event.NewAssume("y: [1,1]"))

	assert.True(t, grandchild.Has("x"))
	assert.True(t, grandchild.Has("y"))
	// ancestor's binding is unaffected by the descendant's extension.
	assert.False(t, child.Has("y"))
}

func TestConstraintMgrSharedWhenNoNewBinding(t *testing.T) {
	c := Next(nil, event.NewAssume("x: [0,0]"))
	next := Next(c, event.NewCall("foo()", ""))
	assert.Same(t, c, next, "non-Assume events share the parent chain by reference")
}

func TestConstraintMgrIgnoresNonConstraintAssume(t *testing.T) {
	c := Next(nil, event.NewAssume("not-a-constraint"))
	assert.False(t, c.Has("anything"))
}
