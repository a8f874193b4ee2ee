package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// VCS defines the repository queries the build orchestrator needs.
type VCS interface {
	// Describe returns the raw "describe" output for the repo at dir:
	// nearest tag plus commit distance and abbreviated hash.
	Describe(ctx context.Context, dir string) (string, error)

	// Branch returns the name of the currently checked-out branch.
	Branch(ctx context.Context, dir string) (string, error)

	// Commit returns the abbreviated hash of HEAD.
	Commit(ctx context.Context, dir string) (string, error)

	// Tags returns all tags of the repo at dir.
	Tags(ctx context.Context, dir string) ([]string, error)
}

// gitVCS implements VCS using git.
type gitVCS struct {
	git string
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Describe(ctx context.Context, dir string) (string, error) {
	output, err := g.output(ctx, dir, "describe", "--tags")
	if err != nil {
		return "", fmt.Errorf("describe: %w", err)
	}
	return strings.TrimSpace(output), nil
}

func (g *gitVCS) Branch(ctx context.Context, dir string) (string, error) {
	output, err := g.output(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("branch: %w", err)
	}
	return strings.TrimSpace(output), nil
}

func (g *gitVCS) Commit(ctx context.Context, dir string) (string, error) {
	output, err := g.output(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return strings.TrimSpace(output), nil
}

func (g *gitVCS) Tags(ctx context.Context, dir string) ([]string, error) {
	output, err := g.output(ctx, dir, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

func (g *gitVCS) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
