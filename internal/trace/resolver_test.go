package trace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainedResolverPrefixes(t *testing.T) {
	r := ContainedResolver("foo.c")
	assert.Equal(t, "foo.c:foo.c:12", r("foo.c:12"))
}

func TestFilenameResolverStripsPrefixAndGuessesAs(t *testing.T) {
	prefix := filepath.Join("tmp", "as-out")
	path := filepath.Join(prefix, "foo.c.as.xml")
	r := FilenameResolver(prefix)(path)
	assert.Equal(t, "foo.c:foo.c:12", r("foo.c:12"))
}

func TestFilenameResolverFallsThroughWhenNoPrefixMatch(t *testing.T) {
	r := FilenameResolver("tmp/as-out")("somewhere/else/foo.c")
	assert.Equal(t, "raw", r("raw"))
}
