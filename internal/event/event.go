// Package event implements the Event sum type emitted by one ExecNode:
// Call, Return, Location, Assume, and EOP (spec.md §3). Events are
// immutable after construction; their embedded Symbol payload is parsed
// lazily and memoized once, the Go analogue of the original's
// LazyParse/once-initialized slot (spec.md §9).
package event

import (
	"strings"
	"sync"

	"github.com/cogumbreiro/apisan/internal/symbol"
)

// Kind discriminates the Event sum type.
type Kind int

const (
	KindCall Kind = iota
	KindReturn
	KindLocation
	KindAssume
	KindEOP
)

func (k Kind) String() string {
	switch k {
	case KindCall:
		return "Call"
	case KindReturn:
		return "Return"
	case KindLocation:
		return "Location"
	case KindAssume:
		return "Assume"
	case KindEOP:
		return "EOP"
	default:
		return "Unknown"
	}
}

// Wire tags, as they appear in <KIND> (spec.md §6).
const (
	TagCall     = "@LOG_CALL"
	TagReturn   = "@LOG_RETURN"
	TagLocation = "@LOG_LOCATION"
	TagEOP      = "@LOG_EOP"
	TagAssume   = "@LOG_ASSUME"
)

// Location kinds (<TYPE>).
const (
	LocStore = "STORE"
	LocLoad  = "LOAD"
)

// Event is immutable once constructed by one of the New* functions
// below; there is no exported setter.
type Event struct {
	kind Kind

	// Call / Return
	callText string

	// Location
	locText string
	locKind string

	// Assume
	condText string

	// Call / Return / Location share a resolved source-location string.
	code string

	once   sync.Once
	cached symbol.Symbol
}

// Kind returns the event's variant tag.
func (e *Event) Kind() Kind { return e.kind }

// Code returns the resolved "file:logical:line" source location, if any.
func (e *Event) Code() string { return e.code }

// NewCall builds a Call event.
func NewCall(callText, code string) *Event {
	return &Event{kind: KindCall, callText: callText, code: code}
}

// NewReturn builds a Return event.
func NewReturn(callText, code string) *Event {
	return &Event{kind: KindReturn, callText: callText, code: code}
}

// NewLocation builds a Location event.
func NewLocation(locText, locKind, code string) *Event {
	return &Event{kind: KindLocation, locText: locText, locKind: locKind, code: code}
}

// NewAssume builds an Assume event.
func NewAssume(condText string) *Event {
	return &Event{kind: KindAssume, condText: condText}
}

// NewEOP builds the end-of-path marker event.
func NewEOP() *Event {
	return &Event{kind: KindEOP}
}

// CallText returns the raw call/return text (empty for other kinds).
func (e *Event) CallText() string { return e.callText }

// CallName returns the call target's name, derived from the text before
// the first '(' — mirrors original_source's `_call_name`. Returns "" if
// the event has no call text or it has no '(' .
func (e *Event) CallName() string {
	if e.callText == "" {
		return ""
	}
	if i := strings.IndexByte(e.callText, '('); i >= 0 {
		return e.callText[:i]
	}
	return ""
}

// Call lazily parses and memoizes the call/return symbol.
func (e *Event) Call() symbol.Symbol {
	e.once.Do(func() {
		e.cached = symbol.Parse(e.callText)
	})
	return e.cached
}

// LocText returns the raw location text.
func (e *Event) LocText() string { return e.locText }

// LocKind returns the <TYPE> value (STORE, LOAD, ...).
func (e *Event) LocKind() string { return e.locKind }

// IsStore reports whether this Location event is a STORE.
func (e *Event) IsStore() bool { return e.locKind == LocStore }

// Loc lazily parses and memoizes the location symbol.
func (e *Event) Loc() symbol.Symbol {
	e.once.Do(func() {
		e.cached = symbol.Parse(e.locText)
	})
	return e.cached
}

// CondText returns the raw Assume condition text.
func (e *Event) CondText() string { return e.condText }

// Cond lazily parses and memoizes the Assume condition's symbol.
func (e *Event) Cond() symbol.Symbol {
	e.once.Do(func() {
		e.cached = symbol.Parse(e.condText)
	})
	return e.cached
}
