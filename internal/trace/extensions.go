package trace

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// SupportedExtensions lists the input suffixes the explorer recognizes
// when walking a directory, mirroring apisan.lib.utils's supported
// extensions (.as, plus the one compressed form this port decompresses
// directly). Repurposed from lci's include/exclude-glob matcher
// (internal/indexing), which also drives matching with doublestar.
var SupportedExtensions = []string{"*.as", "*.as.gz"}

// IsSupported reports whether path's base name matches one of
// SupportedExtensions.
func IsSupported(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range SupportedExtensions {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
