// Package dbg is a small package-level logger grounded on lci's
// internal/debug: a mutex-guarded writer and a debug/info/warn level
// split, generalized to apisan.lib.dbg's level-aware quiet() (spec.md
// §6: "ignored_log_levels (default [\"debug\"])"). No third-party
// logging library is pulled in for this concern anywhere in the
// retrieval pack, so this stays on log/fmt (see DESIGN.md).
package dbg

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     = log.New(os.Stderr, "", log.LstdFlags)
	ignored = map[string]bool{"debug": true}
)

// Quiet sets the set of silenced log levels, replacing the default
// (mirrors apisan.lib.dbg.quiet, driven by the ignored_log_levels
// config key).
func Quiet(levels []string) {
	mu.Lock()
	defer mu.Unlock()
	ignored = make(map[string]bool, len(levels))
	for _, l := range levels {
		ignored[l] = true
	}
}

func emit(level, format string, args ...any) {
	mu.Lock()
	silenced := ignored[level]
	logger := out
	mu.Unlock()
	if silenced {
		return
	}
	logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Debugf logs at debug level; silenced by default.
func Debugf(format string, args ...any) { emit("debug", format, args...) }

// Info logs at info level (spec.md §7: "recoverable errors are logged
// at info level").
func Info(format string, args ...any) { emit("info", format, args...) }

// Warn logs at warn level.
func Warn(format string, args ...any) { emit("warn", format, args...) }

// SetOutput redirects all log output, primarily for tests.
func SetOutput(w *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}
