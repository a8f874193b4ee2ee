// Package boost plans the native dependencies of the control board
// extension: it turns the configured Boost components and Python version
// into library resolution requests and accumulates the include and link
// arguments handed to the sub-build.
package boost

import (
	"path/filepath"
	"strings"

	"github.com/sci-bots/dmfbuild/internal/config"
	"github.com/sci-bots/dmfbuild/internal/libres"
)

// Plan is the outcome of resolving every required dependency. A missing
// dependency aborts planning; a Plan always covers the full configured set.
type Plan struct {
	IncludeDirs []string
	LibDirs     []string
	Libs        []string

	// Shared are resolved shared artifacts, deployed next to the built
	// extension so it loads without a system-wide install.
	Shared []string
}

// Specs expands the configuration into one resolution request per required
// library.
func Specs(cfg *config.File, platform libres.Platform) []libres.Spec {
	paths := libDirs(cfg.Prefixes, platform)
	specs := make([]libres.Spec, 0, len(cfg.Boost.Components)+1)
	for _, component := range cfg.Boost.Components {
		specs = append(specs, libres.Spec{
			Pattern:  boostPattern(component, cfg.Boost.MultiThreaded, platform),
			Paths:    paths,
			Platform: platform,
			Kind:     libres.Shared,
		})
	}
	if cfg.Python.Version != "" {
		specs = append(specs, libres.Spec{
			Pattern:  pythonPattern(cfg.Python.Version, platform),
			Paths:    paths,
			Platform: platform,
			Kind:     libres.Shared,
		})
	}
	return specs
}

// Resolve resolves every spec and accumulates build arguments. The first
// unresolved dependency fails the whole plan: building without it would be
// meaningless.
func Resolve(cfg *config.File, platform libres.Platform) (*Plan, error) {
	plan := &Plan{IncludeDirs: includeDirs(cfg, platform)}
	seen := make(map[string]bool)
	for _, spec := range Specs(cfg, platform) {
		resolved, err := libres.Resolve(spec)
		if err != nil {
			return nil, err
		}
		plan.Libs = append(plan.Libs, resolved.LinkName)
		plan.Shared = append(plan.Shared, resolved.Path)
		if dir := filepath.Dir(resolved.Path); !seen[dir] {
			seen[dir] = true
			plan.LibDirs = append(plan.LibDirs, dir)
		}
	}
	return plan, nil
}

// boostPattern builds the name pattern for one Boost component. Windows
// toolchains tag filenames with compiler and threading-model segments
// (e.g. boost_thread-mgw46-mt-1_49), so the multi-threaded request keeps a
// wildcard compiler tag around the -mt ABI marker.
func boostPattern(component string, mt bool, platform libres.Platform) string {
	if platform == libres.Windows && mt {
		return "boost_" + component + "*-mt-*"
	}
	return "boost_" + component + "*"
}

// pythonPattern builds the interpreter library pattern. Windows drops the
// dot from the version (python27.lib), posix keeps it (libpython2.7.so).
func pythonPattern(version string, platform libres.Platform) string {
	if platform == libres.Windows {
		return "python" + strings.ReplaceAll(version, ".", "")
	}
	return "python" + version
}

// libDirs lists the library directories under each prefix, in prefix
// priority order. Windows Python installs keep import libraries under
// libs rather than lib.
func libDirs(prefixes []string, platform libres.Platform) []string {
	var dirs []string
	for _, prefix := range prefixes {
		dirs = append(dirs, filepath.Join(prefix, "lib"))
		if platform == libres.Windows {
			dirs = append(dirs, filepath.Join(prefix, "libs"))
		}
	}
	return dirs
}

func includeDirs(cfg *config.File, platform libres.Platform) []string {
	var dirs []string
	for _, prefix := range cfg.Prefixes {
		dirs = append(dirs, filepath.Join(prefix, "include"))
		if platform != libres.Windows && cfg.Python.Version != "" {
			dirs = append(dirs, filepath.Join(prefix, "include", "python"+cfg.Python.Version))
		}
	}
	return dirs
}
