package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cogumbreiro/apisan/internal/symbol"
)

func TestRenderWithoutSource(t *testing.T) {
	line := Render(0.9, "f.c:f.c:99", "foo",
		[]symbol.Interval{{Lo: 5, Hi: 5}}, []string{"a", "b"}, 3, false)
	assert.Equal(t, "90.00% f.c:f.c:99 'foo' == 5 {a, b}", line)
}

func TestRenderThreadSafetyCtx(t *testing.T) {
	line := Render(1.0, "f.c:f.c:1", "pthread_mutex_lock",
		true, []string{"a"}, 3, false)
	assert.Equal(t, "100.00% f.c:f.c:1 'pthread_mutex_lock' true {a}", line)
}

func TestRenderOmitsSourceWhenUnresolvable(t *testing.T) {
	line := Render(0.9, "/nonexistent:f.c:1", "foo", nil, nil, 3, true)
	assert.NotContains(t, line, "\n")
}
