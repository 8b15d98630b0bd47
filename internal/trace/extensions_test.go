package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedExtensions(t *testing.T) {
	assert.True(t, IsSupported("/a/b/trace.as"))
	assert.True(t, IsSupported("/a/b/trace.as.gz"))
	assert.False(t, IsSupported("/a/b/trace.txt"))
}

func TestOpenerForPicksGzip(t *testing.T) {
	assert.IsType(t, GzipOpener{}, OpenerFor("foo.as.gz"))
	assert.IsType(t, PlainOpener{}, OpenerFor("foo.as"))
}
