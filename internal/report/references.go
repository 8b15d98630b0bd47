package report

import "strings"

// FormatReferences renders refs truncated to size, as `{a, b, c}`. Unlike
// original_source's BugReport.get_references (whose `references.pop()`
// call on a single-element set mutates it — spec.md §9's documented, and
// deliberately not replicated, bug), this never mutates refs.
func FormatReferences(refs []string, size int) string {
	if size < 0 {
		size = 0
	}
	if size > len(refs) {
		size = len(refs)
	}
	return "{" + strings.Join(refs[:size], ", ") + "}"
}
