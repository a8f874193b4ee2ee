// Package config loads the dmfbuild.yaml project file and carries the
// immutable per-invocation build configuration handed to sub-builds.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project file looked up in the working directory.
const DefaultFileName = "dmfbuild.yaml"

// File is the on-disk project configuration.
type File struct {
	// Source is the native extension source directory, handed to the
	// SCons sub-build.
	Source string `yaml:"source"`

	// Docs is the Sphinx documentation source directory.
	Docs string `yaml:"docs"`

	// Deploy is the directory resolved shared artifacts are copied into.
	// Empty disables deployment.
	Deploy string `yaml:"deploy"`

	// PrimaryBranch builds omit the branch qualifier in the version.
	PrimaryBranch string `yaml:"primary_branch"`

	// Prefixes are dependency install prefixes searched for headers and
	// libraries, highest priority first.
	Prefixes []string `yaml:"prefixes"`

	Boost    Boost    `yaml:"boost"`
	Python   Python   `yaml:"python"`
	Hardware Hardware `yaml:"hardware"`
}

// Boost selects the Boost components linked into the extension.
type Boost struct {
	// Components are logical names, e.g. thread, filesystem, python.
	Components []string `yaml:"components"`

	// MultiThreaded requires the -mt ABI builds where naming carries the
	// threading tag (windows toolchains).
	MultiThreaded bool `yaml:"mt"`
}

// Python names the interpreter the extension embeds against.
type Python struct {
	Version string `yaml:"version"` // e.g. "2.7"
}

// Hardware carries the control board version stamped into the extension.
type Hardware struct {
	Major int `yaml:"major"`
	Minor int `yaml:"minor"`
}

// Default returns the configuration used when dmfbuild.yaml is absent or
// omits fields.
func Default() *File {
	return &File{
		Source:        "src",
		Docs:          "docs",
		PrimaryBranch: "master",
		Boost: Boost{
			Components:    []string{"thread", "filesystem", "python"},
			MultiThreaded: true,
		},
		Python:   Python{Version: "2.7"},
		Hardware: Hardware{Major: 2, Minor: 0},
	}
}

// Load reads path over the defaults: fields the file omits keep their
// default values. A missing file returns the defaults unchanged.
func Load(path string) (*File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}
