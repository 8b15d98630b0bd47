package trace

import (
	"os"
	"path/filepath"
	"strings"
)

// ContainedResolver prefixes every resolved code site with a fixed
// container name, mirroring original_source's ContainedResolver
// ("container + sep + filename").
func ContainedResolver(container string) Resolver {
	prefix := container + ":"
	return func(raw string) string { return prefix + raw }
}

// FilenameResolver mirrors original_source's FilenameResolver: given the
// path of the input trace file (normally produced under an "as-out"
// working directory), it strips that directory prefix and guesses the
// original ".as"-suffixed source name, then returns a ContainedResolver
// for it. If the input path does not sit under prefix, code sites pass
// through unresolved.
func FilenameResolver(prefix string) func(inputPath string) Resolver {
	return func(inputPath string) Resolver {
		if !strings.HasPrefix(inputPath, prefix) {
			return noResolver
		}
		rest := strings.TrimPrefix(inputPath, prefix)
		rest = strings.TrimPrefix(rest, string(os.PathSeparator))

		name := rest
		ext := filepath.Ext(name)
		for ext != "" && ext != ".as" {
			name = strings.TrimSuffix(name, ext)
			ext = filepath.Ext(name)
		}
		if ext == ".as" {
			return ContainedResolver(strings.TrimSuffix(name, ext))
		}
		return ContainedResolver(rest)
	}
}

// DefaultFilenamePrefix mirrors original_source's default
// os.path.join(os.getcwd(), "as-out").
func DefaultFilenamePrefix() string {
	wd, err := os.Getwd()
	if err != nil {
		return "as-out"
	}
	return filepath.Join(wd, "as-out")
}
