package config

import (
	"fmt"
	"strings"

	"github.com/sci-bots/dmfbuild/internal/libres"
)

// Build is the per-invocation configuration exported to sub-builds: the
// derived software version, the hardware version the firmware targets, and
// the include/link arguments accumulated from dependency resolution. It is
// assembled once, before any sub-build runs, and never mutated afterwards;
// sub-builds receive it as explicit variables rather than ambient process
// state.
type Build struct {
	SoftwareVersion string
	HardwareMajor   int
	HardwareMinor   int

	// Platform picks the path-list separator the exported variables use,
	// matching the conventions the resolved paths follow.
	Platform libres.Platform

	IncludeDirs []string
	LibDirs     []string
	Libs        []string // logical link names, in resolution order

	// SharedArtifacts are resolved shared library paths copied into the
	// deploy directory after a successful extension build.
	SharedArtifacts []string
}

// Vars renders the exported build variables as KEY=value pairs in a stable
// order, the form both the SCons sub-build and the process environment
// consume.
func (b *Build) Vars() []string {
	sep := ":"
	if b.Platform == libres.Windows {
		// Drive letters make ":" ambiguous in windows path lists.
		sep = ";"
	}
	return []string{
		"SOFTWARE_VERSION=" + b.SoftwareVersion,
		fmt.Sprintf("HARDWARE_MAJOR_VERSION=%d", b.HardwareMajor),
		fmt.Sprintf("HARDWARE_MINOR_VERSION=%d", b.HardwareMinor),
		"CPPPATH=" + strings.Join(b.IncludeDirs, sep),
		"LIBPATH=" + strings.Join(b.LibDirs, sep),
		"LIBS=" + strings.Join(b.Libs, ","),
	}
}
