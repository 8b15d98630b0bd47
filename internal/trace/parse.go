package trace

import (
	"github.com/cogumbreiro/apisan/internal/dbg"
	"github.com/cogumbreiro/apisan/internal/errs"
	"github.com/cogumbreiro/apisan/internal/exectree"
)

// ParseFile extracts every trace block from path, decodes each into its
// top-level ExecTrees, and returns them concatenated in document order
// (spec.md §4.1). A malformed block aborts the whole file (spec.md §4.1,
// §7.1: "XML parse errors abort the current file, report and return
// nothing"), matching original_source/explorer.py's parse_file, where an
// ET.fromstring failure ends that file's generator outright rather than
// resuming at the next block. opener selects the transparent
// decompression strategy (spec.md §6.1); resolve is applied to every
// <CODE> payload.
func ParseFile(path string, opener FileOpener, resolve Resolver, parseConstraints bool) ([]*exectree.ExecTree, error) {
	f, err := opener.Open(path)
	if err != nil {
		return nil, errs.New(errs.TraceFile, "open "+path, err)
	}
	defer f.Close()

	blocks := ScanBlocks(f)
	var trees []*exectree.ExecTree
	for _, body := range blocks {
		parsed, err := DecodeBlock(body, parseConstraints, resolve)
		if err != nil {
			dbg.Info("%s when parsing %s", err, path)
			return nil, err
		}
		trees = append(trees, parsed...)
	}
	return trees, nil
}
