// Package cache implements the per-file opportunistic cache described in
// spec.md §4.9: one payload per (input file, checker) pair, stored as a
// sibling of the input file, fingerprinted so a cache left by an
// incompatible prior run is detected and discarded rather than trusted.
// Grounded on the explorer's cache decorator in
// original_source/analyzer/apisan/parse/explorer.py (file-keyed, silently
// skipped on any failure) and on lci's internal/cache for the "a cache
// miss is never an error" shape, adapted from its in-memory sync.Map
// design to an on-disk, per-file gob payload since the two caches serve
// different lifetimes (process-local hot cache vs. cross-run result
// cache).
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/cogumbreiro/apisan/internal/apicontext"
	"github.com/cogumbreiro/apisan/internal/dbg"
)

// suffix is appended to the cache-key "<input_path>.<checker_name>" to
// keep the sibling file recognizably separate from the traced input.
const suffix = ".apisan-cache"

func path(inputPath, checkerName string) string {
	return inputPath + "." + checkerName + suffix
}

// fingerprint captures everything that must match for a cache entry to
// still apply: the checker's name (so a trace.as.thread.apisan-cache file
// can never satisfy a missing-check load) and the input file's size/mtime (a cheap
// stand-in for a content hash, matching explorer.py's cache invalidation
// which keys off stat(), not a full re-read).
func fingerprint(inputPath, checkerName string) (uint64, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return 0, err
	}
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%d|%d", checkerName, info.Size(), info.ModTime().UnixNano())
	return h.Sum64(), nil
}

// entry is the on-disk payload: the fingerprint guards against staleness,
// Ctx is the gob-encoded apicontext.Context[V] itself.
type entry[V comparable] struct {
	Fingerprint uint64
	Ctx         *apicontext.Context[V]
}

// Load returns the cached Context for (inputPath, checkerName), if one
// exists, is fresh, and decodes cleanly. Every failure mode - skipCache
// set, no cache file, stat error, stale fingerprint, corrupt payload -
// is opportunistic: Load falls through to (nil, false) rather than
// surfacing an error, so a cache miss always just means "compute it"
// (spec.md §4.9, §7.3).
func Load[V comparable](inputPath, checkerName string, skipCache bool) (*apicontext.Context[V], bool) {
	if skipCache {
		return nil, false
	}
	want, err := fingerprint(inputPath, checkerName)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(path(inputPath, checkerName))
	if err != nil {
		return nil, false
	}
	var e entry[V]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		dbg.Info("%s: discarding unreadable cache for %s", err, inputPath)
		return nil, false
	}
	if e.Fingerprint != want {
		dbg.Info("stale cache for %s (%s), recomputing", inputPath, checkerName)
		return nil, false
	}
	return e.Ctx, true
}

// Store writes ctx to the on-disk cache for (inputPath, checkerName).
// Write is opportunistic too (spec.md §4.9: "write is opportunistic"):
// any failure - stat error, encode error, a read-only directory - is
// logged and swallowed, never returned to the caller. The write goes
// through a temp file plus rename so a reader never observes a
// partially-written cache entry.
func Store[V comparable](inputPath, checkerName string, ctx *apicontext.Context[V], skipCache bool) {
	if skipCache {
		return
	}
	fp, err := fingerprint(inputPath, checkerName)
	if err != nil {
		dbg.Warn("%s: skipping cache write for %s", err, inputPath)
		return
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry[V]{Fingerprint: fp, Ctx: ctx}); err != nil {
		dbg.Warn("%s: skipping cache write for %s", err, inputPath)
		return
	}
	dst := path(inputPath, checkerName)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		dbg.Warn("%s: skipping cache write for %s", err, inputPath)
		return
	}
	if err := os.Rename(tmp, dst); err != nil {
		dbg.Warn("%s: skipping cache write for %s", err, inputPath)
		os.Remove(tmp)
	}
}
