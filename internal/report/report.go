package report

import "fmt"

// Render formats one checker.Report as the single line described in
// spec.md §4.10: `{score%} {code} '{key}' {ctx_desc} {references}{\n
// {source_line}}?`. referenceCount truncates the reference list
// (spec.md §7.4's `reference` config key); withSource controls whether
// SourceLine is consulted at all (off by default — it re-reads the
// original file from disk, spec.md §6).
func Render(score float64, code, key string, ctx any, references []string, referenceCount int, withSource bool) string {
	line := fmt.Sprintf("%.2f%% %s '%s' %s %s",
		score*100, code, key, HumanizeCtx(ctx), FormatReferences(references, referenceCount))
	if !withSource {
		return line
	}
	if src, ok := SourceLine(code); ok {
		line += "\n" + src
	}
	return line
}
