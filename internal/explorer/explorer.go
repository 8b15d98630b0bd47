// Package explorer drives one Checker over a directory of trace files
// (spec.md §4.9): Explore walks the tree sequentially, ExploreParallel
// fans out across a worker pool bounded to runtime.NumCPU(), and
// ExploreSingleFile primes the cache for one file without returning a
// result. Grounded on original_source/analyzer/apisan/parse/explorer.py's
// Explorer.explore/explore_parallel/explore_single_file, with the
// directory-walk idiom (symlink-cycle guard, SkipDir on error) borrowed
// from lci's internal/indexing file scanner.
package explorer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cogumbreiro/apisan/internal/checker"
	"github.com/cogumbreiro/apisan/internal/dbg"
	"github.com/cogumbreiro/apisan/internal/trace"
)

// Explorer owns one Checker and drives it over every supported trace file
// under a directory.
type Explorer struct {
	Checker   checker.Checker
	Resolve   func(inputPath string) trace.Resolver
	SkipCache bool
}

// New builds an Explorer for c. resolveFor picks the <CODE>-resolving
// Resolver for a given input path (e.g. trace.FilenameResolver(prefix),
// partially applied); pass nil to resolve codes verbatim.
func New(c checker.Checker, resolveFor func(string) trace.Resolver, skipCache bool) *Explorer {
	return &Explorer{Checker: c, Resolve: resolveFor, SkipCache: skipCache}
}

func (e *Explorer) resolverFor(path string) trace.Resolver {
	if e.Resolve == nil {
		return nil
	}
	return e.Resolve(path)
}

// ExploreSingleFile parses and processes one file, caching the result
// (spec.md §4.9's explore_single_file), without returning it — used to
// warm the cache ahead of a later Explore/ExploreParallel pass.
func (e *Explorer) ExploreSingleFile(path string) error {
	_, err := e.process(path)
	return err
}

// process returns the per-file Context for path, consulting and then
// populating the cache (spec.md §4.9: "read is opportunistic... write is
// opportunistic").
func (e *Explorer) process(path string) (checker.Context, error) {
	if ctx, ok := e.Checker.LoadCache(path, e.SkipCache); ok {
		return ctx, nil
	}

	trees, err := trace.ParseFile(path, trace.OpenerFor(path), e.resolverFor(path), e.Checker.ParseConstraints())
	if err != nil {
		return nil, err
	}

	var ctxs []checker.Context
	for _, tree := range trees {
		ctxs = append(ctxs, e.Checker.Process(tree))
	}
	merged := mergeAll(ctxs)
	if merged != nil {
		e.Checker.SaveCache(path, e.SkipCache, merged)
	}
	return merged, nil
}

func mergeAll(ctxs []checker.Context) checker.Context {
	if len(ctxs) == 0 {
		return nil
	}
	acc := ctxs[0]
	for _, other := range ctxs[1:] {
		acc.Merge(other)
	}
	return acc
}

// walk visits every supported trace file under root in document order,
// skipping unresolvable symlinks and directories that error out rather
// than aborting the whole run (spec.md §7: file-level errors never abort
// the overall run).
func walk(root string, visit func(path string) error) error {
	visited := make(map[string]bool)
	return filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			dbg.Warn("%s: skipping", walkErr)
			return nil
		}
		if d.IsDir() {
			real, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil
			}
			if visited[real] {
				return filepath.SkipDir
			}
			visited[real] = true
			return nil
		}
		if !trace.IsSupported(path) {
			return nil
		}
		return visit(path)
	})
}

// Explore walks root and returns the ranked bug reports across every
// supported trace file found, processed sequentially.
func (e *Explorer) Explore(root string) ([]checker.Report, error) {
	var ctxs []checker.Context
	err := walk(root, func(path string) error {
		ctx, err := e.process(path)
		if err != nil {
			dbg.Info("%s: skipping %s", err, path)
			return nil
		}
		if ctx != nil {
			ctxs = append(ctxs, ctx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.Checker.Merge(ctxs), nil
}

// ExploreParallel is Explore's concurrent counterpart: each file is
// parsed and processed on its own goroutine (errgroup bounded to
// runtime.NumCPU(), spec.md §5), mirroring
// multiprocessing.Pool(processes=cpu_count()) from the original. No
// mutable state crosses goroutine boundaries beyond the per-file
// checker.Context values collected here and merged afterward.
func (e *Explorer) ExploreParallel(root string) ([]checker.Report, error) {
	var paths []string
	if err := walk(root, func(path string) error {
		paths = append(paths, path)
		return nil
	}); err != nil {
		return nil, err
	}

	results := make([]checker.Context, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ctx, err := e.process(path)
			if err != nil {
				dbg.Info("%s: skipping %s", err, path)
				return nil
			}
			results[i] = ctx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ctxs []checker.Context
	for _, ctx := range results {
		if ctx != nil {
			ctxs = append(ctxs, ctx)
		}
	}
	return e.Checker.Merge(ctxs), nil
}
