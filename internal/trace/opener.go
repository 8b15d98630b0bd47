package trace

import (
	"compress/gzip"
	"io"
	"os"
)

// FileOpener is the decompression seam (spec.md §6.1): transparent
// decompression based on file extension is delegated to a pluggable
// opener rather than re-implemented as a compression codec, matching
// spec.md §1's Non-goal of not reimplementing archive formats.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// PlainOpener opens a file unmodified.
type PlainOpener struct{}

func (PlainOpener) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

// GzipOpener opens a file itself, transparently decompressing ".gz"
// input — the one compressed format the standard library covers
// directly (spec.md §1: ".xz"/".lzma"/".bz2" stay external collaborators).
type GzipOpener struct{}

type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

func (GzipOpener) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{gz: gz, f: f}, nil
}

// OpenerFor picks a FileOpener by path extension.
func OpenerFor(path string) FileOpener {
	if len(path) >= 3 && path[len(path)-3:] == ".gz" {
		return GzipOpener{}
	}
	return PlainOpener{}
}
