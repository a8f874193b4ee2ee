package build

import "context"

// mockVCS implements vcs.VCS for unit testing.
type mockVCS struct {
	describe string
	branch   string
	commit   string
	tags     []string
	err      error
}

func (m *mockVCS) Describe(ctx context.Context, dir string) (string, error) {
	return m.describe, m.err
}

func (m *mockVCS) Branch(ctx context.Context, dir string) (string, error) {
	return m.branch, m.err
}

func (m *mockVCS) Commit(ctx context.Context, dir string) (string, error) {
	return m.commit, m.err
}

func (m *mockVCS) Tags(ctx context.Context, dir string) ([]string, error) {
	return m.tags, m.err
}

// fakeRunner implements buildsys.BuildSystem and records what it saw.
type fakeRunner struct {
	defines map[string]string
	env     map[string]string
	uses    []string
	builds  int
	err     error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		defines: make(map[string]string),
		env:     make(map[string]string),
	}
}

func (f *fakeRunner) Use(root string)        { f.uses = append(f.uses, root) }
func (f *fakeRunner) Define(key, val string) { f.defines[key] = val }
func (f *fakeRunner) Env(key, val string)    { f.env[key] = val }
func (f *fakeRunner) OutputDir() string      { return "" }

func (f *fakeRunner) Build(targets ...string) error {
	f.builds++
	return f.err
}
