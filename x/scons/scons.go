// Package scons wraps SCons sub-builds: build variables become KEY=value
// command-line arguments the way SCons consumes them.
package scons

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// SCons drives an SCons-based sub-build rooted at a source directory.
type SCons struct {
	exe       string
	sourceDir string
	outDir    string
	jobs      int
	defines   map[string]string
	env       map[string]string
}

// New returns a ready-to-use SCons for the given source directory.
func New(sourceDir, outDir string) *SCons {
	return &SCons{
		exe:       "scons",
		sourceDir: sourceDir,
		outDir:    outDir,
		defines:   make(map[string]string),
		env:       make(map[string]string),
	}
}

// Exe overrides the scons executable.
func (s *SCons) Exe(path string) { s.exe = path }

// Jobs sets the -j parallelism.
func (s *SCons) Jobs(n int) { s.jobs = n }

// Define exports a KEY=value build variable.
func (s *SCons) Define(key, val string) { s.defines[key] = val }

// Env sets key=value for every command spawned later.
func (s *SCons) Env(key, val string) { s.env[key] = val }

// Use configures the process environment so the compilers spawned by the
// sub-build find headers and libraries from a non-system dependency
// installed at root.
func (s *SCons) Use(root string) {
	includeDir := filepath.Join(root, "include")
	libDir := filepath.Join(root, "lib")

	if runtime.GOOS == "windows" {
		if _, err := os.Stat(includeDir); err == nil {
			prependPath("INCLUDE", includeDir)
		}
		if _, err := os.Stat(libDir); err == nil {
			prependPath("LIB", libDir)
		}
		return
	}
	if _, err := os.Stat(includeDir); err == nil {
		appendFlag("CPPFLAGS", "-I"+includeDir)
	}
	if _, err := os.Stat(libDir); err == nil {
		appendFlag("LDFLAGS", "-L"+libDir)
	}
}

// Build runs "scons -C <sourceDir>" with all exported variables, optionally
// limited to named targets.
func (s *SCons) Build(targets ...string) error {
	return s.run(append(s.args(), targets...))
}

// Clean runs "scons -c" to remove built artifacts.
func (s *SCons) Clean() error {
	return s.run(append(s.args(), "-c"))
}

// OutputDir returns outDir if set, otherwise sourceDir.
func (s *SCons) OutputDir() string {
	if s.outDir != "" {
		return s.outDir
	}
	return s.sourceDir
}

func (s *SCons) args() []string {
	args := []string{"-C", s.sourceDir}
	if s.jobs > 0 {
		args = append(args, "-j", strconv.Itoa(s.jobs))
	}
	keys := make([]string, 0, len(s.defines))
	for k := range s.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k+"="+s.defines[k])
	}
	return args
}

func (s *SCons) run(args []string) error {
	cmd := exec.Command(s.exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(s.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), s.env)
	}
	return cmd.Run()
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

// prependPath prepends value to a PATH-style env var.
func prependPath(key, value string) {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	if cur := os.Getenv(key); cur != "" {
		value += sep + cur
	}
	os.Setenv(key, value)
}

// appendFlag appends a space-separated flag to an env var.
func appendFlag(key, flag string) {
	if cur := os.Getenv(key); cur != "" {
		flag = cur + " " + flag
	}
	os.Setenv(key, flag)
}
