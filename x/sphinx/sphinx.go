// Package sphinx wraps sphinx-build documentation builds.
package sphinx

import (
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Sphinx drives a sphinx-build invocation.
type Sphinx struct {
	exe       string
	sourceDir string
	outDir    string
	builder   string
	overrides map[string]string
	env       map[string]string
}

// New returns a ready-to-use Sphinx producing HTML into outDir.
func New(sourceDir, outDir string) *Sphinx {
	return &Sphinx{
		exe:       "sphinx-build",
		sourceDir: sourceDir,
		outDir:    outDir,
		builder:   "html",
		overrides: make(map[string]string),
		env:       make(map[string]string),
	}
}

// Exe overrides the sphinx-build executable.
func (s *Sphinx) Exe(path string) { s.exe = path }

// Builder sets the output builder (e.g. "html", "latex").
func (s *Sphinx) Builder(name string) { s.builder = name }

// Define overrides a conf.py setting via -D, e.g. version and release.
func (s *Sphinx) Define(key, val string) { s.overrides[key] = val }

// Env sets key=value for the spawned command.
func (s *Sphinx) Env(key, val string) { s.env[key] = val }

// Use is a no-op: documentation builds take no native dependencies.
func (s *Sphinx) Use(string) {}

// Build runs sphinx-build. Targets are ignored; sphinx builds the whole
// doc tree.
func (s *Sphinx) Build(targets ...string) error {
	cmd := exec.Command(s.exe, s.args()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(s.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), s.env)
	}
	return cmd.Run()
}

// OutputDir is where the generated documentation lands.
func (s *Sphinx) OutputDir() string { return s.outDir }

func (s *Sphinx) args() []string {
	args := []string{"-b", s.builder}
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-D", k+"="+s.overrides[k])
	}
	return append(args, s.sourceDir, s.outDir)
}

// mergeEnv returns base with every key in overrides replaced or appended.
func mergeEnv(base []string, overrides map[string]string) []string {
	idx := make(map[string]int, len(base))
	for i, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for k, v := range overrides {
		if i, ok := idx[k]; ok {
			base[i] = k + "=" + v
		} else {
			base = append(base, k+"="+v)
		}
	}
	return base
}
