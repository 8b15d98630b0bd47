// Package trace implements the trace stream reader (spec.md §4.1/§6):
// extracting @SYM_EXEC_EXTRACTOR_BEGIN/_END-delimited XML blocks from a
// file, decoding each into execution trees, and threading ConstraintMgr
// state during construction — grounded on original_source's
// analyzer/apisan/parse/explorer.py (parse_file, sig_begin/sig_end).
package trace

import (
	"bufio"
	"io"
	"strings"

	"github.com/cogumbreiro/apisan/internal/dbg"
)

const (
	sigBegin = "@SYM_EXEC_EXTRACTOR_BEGIN"
	sigEnd   = "@SYM_EXEC_EXTRACTOR_END"

	// maxBodyBytes is the 1 GB accumulated-body cap (spec.md §4.1):
	// files exceeding it are skipped with a warning.
	maxBodyBytes = 1 << 30
)

// ScanBlocks reads r and returns the XML body of every
// BEGIN/END-delimited block, in document order. A block whose
// accumulated body exceeds maxBodyBytes is skipped with a dbg.Warn and
// excluded from the result; scanning continues with the next block.
func ScanBlocks(r io.Reader) []string {
	var blocks []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var body strings.Builder
	inBlock := false
	tooBig := false

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, sigBegin):
			inBlock = true
			tooBig = false
			body.Reset()
		case inBlock && strings.HasPrefix(line, sigEnd):
			inBlock = false
			if tooBig {
				dbg.Warn("trace block exceeds %d bytes, skipping", maxBodyBytes)
				continue
			}
			blocks = append(blocks, body.String())
		case inBlock:
			if tooBig {
				continue
			}
			if body.Len()+len(line)+1 > maxBodyBytes {
				tooBig = true
				continue
			}
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	return blocks
}
