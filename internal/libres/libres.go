// Package libres locates installed native libraries on disk, handling
// platform naming conventions and wildcard version/ABI segments.
package libres

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Platform selects the filename conventions used when matching a request
// against directory entries.
type Platform int

const (
	Posix Platform = iota
	Windows
)

// Host returns the platform for the given GOOS value.
func Host(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Posix
}

// Kind is the logical library form being requested.
type Kind int

const (
	// Shared requests a dynamic library. On posix this also matches .so
	// files with trailing version numbers; on windows it matches MinGW
	// import archives (.dll.a) and MSVC import libraries (.lib).
	Shared Kind = iota

	// Static requests a static archive.
	Static
)

// Spec describes one library to resolve.
type Spec struct {
	// Pattern is the logical library name and may contain glob wildcards
	// standing in for version numbers or ABI tags, e.g. "boost_thread*-mt-*".
	Pattern string

	// Paths are the directories to search, highest priority first.
	Paths []string

	Platform Platform
	Kind     Kind
}

// Resolved is the outcome of a successful lookup. It is computed once per
// build invocation and never mutated.
type Resolved struct {
	// Path is the absolute path of the matched file.
	Path string

	// LinkName is the logical name for linker consumption: the platform
	// prefix and suffix are stripped, e.g. "libboost_thread.so.1.49.0"
	// yields "boost_thread".
	LinkName string
}

// NotFoundError reports that no search directory contained a file matching
// the request. A missing native dependency makes the build meaningless, so
// callers treat this as fatal.
type NotFoundError struct {
	Pattern string
	Paths   []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("library %q not found in %s", e.Pattern, strings.Join(e.Paths, ", "))
}

// Resolve searches spec.Paths in priority order and returns the best match
// from the first directory that yields any. Selection within a directory is
// deterministic: the version-greatest filename wins, ties broken by shortest
// name. Returns *NotFoundError when no directory matches.
func Resolve(spec Spec) (Resolved, error) {
	shapes := spec.Platform.shapes(spec.Pattern, spec.Kind)
	for _, dir := range spec.Paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		var candidates []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if matchAny(shapes, entry.Name()) {
				candidates = append(candidates, entry.Name())
			}
		}
		if len(candidates) == 0 {
			continue
		}
		best := pick(candidates)
		abs, err := filepath.Abs(filepath.Join(dir, best))
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{
			Path:     abs,
			LinkName: spec.Platform.linkName(best),
		}, nil
	}
	return Resolved{}, &NotFoundError{Pattern: spec.Pattern, Paths: spec.Paths}
}

// shapes expands a logical request into the concrete filename globs that
// satisfy it on this platform.
func (p Platform) shapes(pattern string, kind Kind) []string {
	switch p {
	case Windows:
		if kind == Static {
			return []string{"lib" + pattern + ".a", pattern + ".lib"}
		}
		return []string{"lib" + pattern + ".dll.a", pattern + ".dll.a", pattern + ".lib"}
	default:
		if kind == Static {
			return []string{"lib" + pattern + ".a"}
		}
		return []string{"lib" + pattern + ".so", "lib" + pattern + ".so.*"}
	}
}

func matchAny(shapes []string, name string) bool {
	for _, shape := range shapes {
		if ok, err := filepath.Match(shape, name); err == nil && ok {
			return true
		}
	}
	return false
}

// pick returns the preferred candidate: greatest in filename-version order,
// so names carrying newer version tags win; equal versions prefer the
// shortest name, then plain string order for full determinism.
func pick(candidates []string) string {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if preferred(c, best) {
			best = c
		}
	}
	return best
}

func preferred(a, b string) bool {
	if c := verCompare(a, b); c != 0 {
		return c > 0
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// linkName strips the platform prefix and suffix from a matched filename,
// leaving the name the linker expects after -l.
func (p Platform) linkName(name string) string {
	base := strings.TrimPrefix(name, "lib")
	switch p {
	case Windows:
		for _, suffix := range []string{".dll.a", ".lib", ".a"} {
			if strings.HasSuffix(base, suffix) {
				return strings.TrimSuffix(base, suffix)
			}
		}
	default:
		// Trailing version numbers live after the .so suffix.
		if i := strings.Index(base, ".so"); i >= 0 {
			return base[:i]
		}
		base = strings.TrimSuffix(base, ".a")
	}
	return base
}
