package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	sym := Parse("ret")
	assert.Equal(t, KindID, sym.Kind)
	assert.Equal(t, "ret", sym.Name)
}

func TestParseCall(t *testing.T) {
	sym := Parse("foo(a, b, 1)")
	assert.Equal(t, KindCall, sym.Kind)
	assert.Equal(t, "foo", sym.Name)
	assert.Equal(t, []string{"a", "b", "1"}, sym.Args)
}

func TestParseCallNoArgs(t *testing.T) {
	sym := Parse("bar()")
	assert.Equal(t, KindCall, sym.Kind)
	assert.Equal(t, "bar", sym.Name)
	assert.Empty(t, sym.Args)
}

func TestParseConstraintSingleInterval(t *testing.T) {
	sym := Parse("ret: [0,0]")
	assert.Equal(t, KindConstraint, sym.Kind)
	assert.Equal(t, "ret", sym.Name)
	assert.Equal(t, []Interval{{Lo: 0, Hi: 0}}, sym.Intervals)
}

func TestParseConstraintMultipleIntervals(t *testing.T) {
	sym := Parse("ret: [-2147483648,-1],[1,2147483647]")
	assert.Equal(t, KindConstraint, sym.Kind)
	assert.Len(t, sym.Intervals, 2)
	assert.Equal(t, int64(-2147483648), sym.Intervals[0].Lo)
	assert.Equal(t, int64(2147483647), sym.Intervals[1].Hi)
}

func TestParseConstraintWithNamedLimits(t *testing.T) {
	sym := Parse("ret: [INT32_MIN,-1],[1,INT32_MAX]")
	assert.Equal(t, KindConstraint, sym.Kind)
	assert.Equal(t, "INT32_MIN", sym.Intervals[0].LoName)
	assert.Equal(t, "INT32_MAX", sym.Intervals[1].HiName)
	assert.Equal(t, int64(-2147483648), sym.Intervals[0].Lo)
}

func TestParseUnknownOnGarbage(t *testing.T) {
	for _, text := range []string{"", "(((", "foo(", "ret:", "1 2 3", "ret: [1]"} {
		sym := Parse(text)
		assert.Equal(t, KindUnknown, sym.Kind, "text=%q", text)
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{"\x00\x01", "foo(((", "][", "ret::::", "()()()"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in) })
	}
}

func TestLimitValue(t *testing.T) {
	v, ok := LimitValue("UINT32_MAX")
	assert.True(t, ok)
	assert.Equal(t, int64(4294967295), v)

	_, ok = LimitValue("NOT_A_LIMIT")
	assert.False(t, ok)
}
