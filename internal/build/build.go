// Package build orchestrates one dmfbuild invocation: it derives the
// software version, resolves native dependencies, and dispatches sub-builds
// in target order.
package build

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/sci-bots/dmfbuild/internal/boost"
	"github.com/sci-bots/dmfbuild/internal/config"
	"github.com/sci-bots/dmfbuild/internal/libres"
	"github.com/sci-bots/dmfbuild/internal/target"
	"github.com/sci-bots/dmfbuild/internal/vcs"
	"github.com/sci-bots/dmfbuild/internal/version"
	"github.com/sci-bots/dmfbuild/pkgs/buildsys"
	"github.com/sci-bots/dmfbuild/x/scons"
	"github.com/sci-bots/dmfbuild/x/sphinx"
)

// Builder runs build targets for one repository checkout.
type Builder struct {
	cfg      *config.File
	vcs      vcs.VCS
	dir      string
	platform libres.Platform

	// Ext and Docs drive the two sub-builds. They default to SCons and
	// sphinx-build; tests swap them out.
	Ext  buildsys.BuildSystem
	Docs buildsys.BuildSystem

	// Jobs is the sub-build parallelism; 0 leaves it to the tool.
	Jobs int
}

// NewBuilder returns a Builder for the repo rooted at dir.
func NewBuilder(cfg *config.File, v vcs.VCS, dir string, platform libres.Platform) *Builder {
	b := &Builder{cfg: cfg, vcs: v, dir: dir, platform: platform}
	b.Ext = scons.New(b.path(cfg.Source), "")
	docsSource := b.path(cfg.Docs)
	b.Docs = sphinx.New(docsSource, filepath.Join(docsSource, "_build", "html"))
	return b
}

// path resolves a configured path against the repo root. Absolute paths
// are taken as-is.
func (b *Builder) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.dir, p)
}

// Prepare assembles the immutable build configuration: the version is
// derived exactly once, and every native dependency is resolved before any
// sub-build runs. Either failure aborts the invocation.
func (b *Builder) Prepare(ctx context.Context) (*config.Build, error) {
	describe, err := b.vcs.Describe(ctx, b.dir)
	if err != nil {
		return nil, fmt.Errorf("query describe: %w", err)
	}
	branch, err := b.vcs.Branch(ctx, b.dir)
	if err != nil {
		return nil, fmt.Errorf("query branch: %w", err)
	}
	software, err := version.Derive(describe, branch, b.cfg.PrimaryBranch)
	if err != nil {
		return nil, err
	}
	log.Infof("software version %s (describe %q, branch %s)", software, describe, branch)

	plan, err := boost.Resolve(b.cfg, b.platform)
	if err != nil {
		return nil, err
	}
	for i, lib := range plan.Libs {
		log.Debugf("resolved %s -> %s", lib, plan.Shared[i])
	}

	return &config.Build{
		SoftwareVersion: software,
		HardwareMajor:   b.cfg.Hardware.Major,
		HardwareMinor:   b.cfg.Hardware.Minor,
		Platform:        b.platform,
		IncludeDirs:     plan.IncludeDirs,
		LibDirs:         plan.LibDirs,
		Libs:            plan.Libs,
		SharedArtifacts: plan.Shared,
	}, nil
}

// Run prepares the build configuration and executes the requested targets
// plus their dependencies in graph order.
func (b *Builder) Run(ctx context.Context, targets ...string) error {
	bc, err := b.Prepare(ctx)
	if err != nil {
		return err
	}
	return b.RunTargets(bc, targets...)
}

// RunTargets executes the requested targets against an already-prepared
// configuration. Callers that need the configuration themselves (e.g. for
// artifact naming) prepare once and pass it here.
func (b *Builder) RunTargets(bc *config.Build, targets ...string) error {
	graph, err := target.New()
	if err != nil {
		return err
	}
	order, err := graph.Order(targets...)
	if err != nil {
		return err
	}

	for _, name := range order {
		log.Infof("target %s", name)
		if err := b.runTarget(name, bc); err != nil {
			return fmt.Errorf("target %s: %w", name, err)
		}
	}
	return nil
}

func (b *Builder) runTarget(name string, bc *config.Build) error {
	switch name {
	case target.Resolve:
		// Resolution happens in Prepare so that every target sees the
		// same immutable configuration.
		return nil
	case target.Ext:
		return b.buildExt(bc)
	case target.Deploy:
		return b.deploy(bc)
	case target.Docs:
		return b.buildDocs(bc)
	}
	return fmt.Errorf("unknown target %q", name)
}

func (b *Builder) buildExt(bc *config.Build) error {
	if s, ok := b.Ext.(*scons.SCons); ok && b.Jobs > 0 {
		s.Jobs(b.Jobs)
	}
	for _, prefix := range b.cfg.Prefixes {
		b.Ext.Use(prefix)
	}
	for _, kv := range bc.Vars() {
		if key, val, ok := strings.Cut(kv, "="); ok {
			b.Ext.Define(key, val)
		}
	}
	return b.Ext.Build()
}

// deploy copies resolved shared artifacts into the deploy directory so the
// extension loads without a system-wide install. Copies are idempotent.
func (b *Builder) deploy(bc *config.Build) error {
	if b.cfg.Deploy == "" {
		log.Debug("no deploy directory configured, skipping")
		return nil
	}
	destDir := b.path(b.cfg.Deploy)
	for _, artifact := range bc.SharedArtifacts {
		dest, err := libres.CopyIfAbsent(artifact, destDir)
		if err != nil {
			return err
		}
		log.Debugf("deployed %s", dest)
	}
	return nil
}

func (b *Builder) buildDocs(bc *config.Build) error {
	b.Docs.Define("version", shortVersion(bc.SoftwareVersion))
	b.Docs.Define("release", bc.SoftwareVersion)
	return b.Docs.Build()
}

// shortVersion trims "1.4.2-dev" to the "1.4" form sphinx shows in page
// headers.
func shortVersion(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}
