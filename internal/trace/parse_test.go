package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBlocks(t *testing.T, blocks ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.as")
	var content string
	for _, b := range blocks {
		content += "@SYM_EXEC_EXTRACTOR_BEGIN\n" + b + "\n@SYM_EXEC_EXTRACTOR_END\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validBlock = `<root>
  <NODE>
    <EVENT>
      <KIND>@LOG_CALL</KIND>
      <CALL>foo(x)</CALL>
      <CODE>f.c:f.c:1</CODE>
    </EVENT>
    <NODE>
      <EVENT>
        <KIND>@LOG_EOP</KIND>
      </EVENT>
    </NODE>
  </NODE>
</root>`

func TestParseFileConcatenatesTreesAcrossBlocks(t *testing.T) {
	path := writeBlocks(t, validBlock, validBlock)
	trees, err := ParseFile(path, PlainOpener{}, nil, true)
	require.NoError(t, err)
	assert.Len(t, trees, 2)
}

func TestParseFileAbortsWholeFileOnMalformedBlock(t *testing.T) {
	path := writeBlocks(t, validBlock, "<unterminated>")
	trees, err := ParseFile(path, PlainOpener{}, nil, true)
	assert.Error(t, err)
	assert.Empty(t, trees)
}
