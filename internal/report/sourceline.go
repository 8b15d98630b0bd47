package report

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// lineMarkerRE matches a GCC-style preprocessor linemarker:
// `# <lineno> "<file>" [flags...]` (spec.md §4.10/§6: "Source-line
// resolver input. A preprocessed-C file with `# <lineno> "<filename>"`
// linemarkers").
var lineMarkerRE = regexp.MustCompile(`^#\s*(\d+)\s+"([^"]*)"`)

// SourceLine resolves a resolved code site ("orig:logical:line") to the
// original source line's text, by re-reading orig (the preprocessed
// file) and tracking linemarkers to find the physical line that carries
// (logical, line). Any failure along the way — unparsable code, missing
// file, line never reached — yields ("", false); source_line is simply
// omitted from the rendered report (spec.md §4.10).
func SourceLine(code string) (string, bool) {
	orig, logical, lineNo, ok := splitCode(code)
	if !ok {
		return "", false
	}

	f, err := os.Open(orig)
	if err != nil {
		return "", false
	}
	defer f.Close()

	currentFile := orig
	nextLogicalLine := 1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if m := lineMarkerRE.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			currentFile = m[2]
			nextLogicalLine = n
			continue
		}
		if currentFile == logical && nextLogicalLine == lineNo {
			return strings.TrimRight(line, "\r\n"), true
		}
		nextLogicalLine++
	}
	return "", false
}

// splitCode parses "orig:logical:line" (the resolved <CODE> shape
// produced by internal/trace's Resolver chain).
func splitCode(code string) (orig, logical string, line int, ok bool) {
	parts := strings.Split(code, ":")
	if len(parts) != 3 {
		return "", "", 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", "", 0, false
	}
	return parts[0], parts[1], n, true
}
