// Package errs implements the five error classes of spec.md §7, grounded
// on lci's internal/errors: typed errors with a Type discriminator,
// Error()/Unwrap(), wrapping an optional underlying cause.
package errs

import "fmt"

// Type discriminates the five error classes spec.md §7 names.
type Type int

const (
	// TraceFile covers "cannot open, oversized (>1 GB body), malformed
	// XML" (spec.md §7.1): log and skip file, overall run continues.
	TraceFile Type = iota
	// SymbolParse covers an invalid symbolic expression (spec.md §7.2):
	// never propagated, materializes Unknown instead.
	SymbolParse
	// Cache covers a read or write failure (spec.md §7.3): log and
	// proceed as if no cache.
	Cache
	// Config covers a missing config file (defaults silently) or an
	// unsupported extension (fatal) (spec.md §7.4).
	Config
	// UnknownEventKind covers an unrecognized <KIND> (spec.md §7.5):
	// fatal for that tree, a programmer bug, never silenced.
	UnknownEventKind
)

func (t Type) String() string {
	switch t {
	case TraceFile:
		return "trace-file"
	case SymbolParse:
		return "symbol-parse"
	case Cache:
		return "cache"
	case Config:
		return "config"
	case UnknownEventKind:
		return "unknown-event-kind"
	default:
		return "unknown"
	}
}

// Error is a typed, wrappable error tagged with one of the five classes.
type Error struct {
	Kind Type
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Type, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fatal reports whether this kind is classed as unconditionally fatal;
// only UnknownEventKind is (spec.md §7.5). Config is conditionally
// fatal (missing file: defaults apply silently; unsupported extension:
// fatal) — internal/config decides that case itself rather than relying
// on this helper. Nothing else in this module consults Fatal either:
// trace.ParseFile returns an UnknownEventKind error like any decode
// error, and the explorer logs it and skips that file.
func (t Type) Fatal() bool {
	return t == UnknownEventKind
}
