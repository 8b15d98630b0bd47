package event

import (
	"testing"

	"github.com/cogumbreiro/apisan/internal/symbol"
	"github.com/stretchr/testify/assert"
)

func TestCallNameSplitsOnParen(t *testing.T) {
	e := NewCall("foo(a, b)", "f.c:f.c:10")
	assert.Equal(t, "foo", e.CallName())
	assert.Equal(t, "f.c:f.c:10", e.Code())
}

func TestCallNameEmptyWithoutParen(t *testing.T) {
	e := NewCall("not-a-call", "")
	assert.Equal(t, "", e.CallName())
}

func TestLazyCallMemoizes(t *testing.T) {
	e := NewCall("foo(a)", "")
	first := e.Call()
	assert.Equal(t, symbol.KindCall, first.Kind)
	second := e.Call()
	assert.Equal(t, first, second)
}

func TestAssumeCond(t *testing.T) {
	e := NewAssume("ret: [0,0]")
	cond := e.Cond()
	assert.Equal(t, symbol.KindConstraint, cond.Kind)
	assert.Equal(t, "ret", cond.Name)
}

func TestLocationIsStore(t *testing.T) {
	e := NewLocation("buf", LocStore, "f.c:f.c:5")
	assert.True(t, e.IsStore())
	e2 := NewLocation("buf", LocLoad, "f.c:f.c:5")
	assert.False(t, e2.IsStore())
}

func TestEOPKind(t *testing.T) {
	e := NewEOP()
	assert.Equal(t, KindEOP, e.Kind())
}
