package libres

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolvePosixShared(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libboost_thread.so.1.49.0", "libboost_thread.so.1.9.0", "libboost_thread.a")

	got, err := Resolve(Spec{
		Pattern:  "boost_thread*",
		Paths:    []string{dir},
		Platform: Posix,
		Kind:     Shared,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "libboost_thread.so.1.49.0"); got.Path != want {
		t.Errorf("Path = %q, want %q", got.Path, want)
	}
	if got.LinkName != "boost_thread" {
		t.Errorf("LinkName = %q, want %q", got.LinkName, "boost_thread")
	}
}

func TestResolveWindowsImportArchive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libboost_thread-mgw46-mt-1_49.dll.a", "boost_thread.lib", "readme.txt")

	got, err := Resolve(Spec{
		Pattern:  "boost_thread*-mt-*",
		Paths:    []string{dir},
		Platform: Windows,
		Kind:     Shared,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "boost_thread-mgw46-mt-1_49"; got.LinkName != want {
		t.Errorf("LinkName = %q, want %q", got.LinkName, want)
	}
}

func TestResolveStatic(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libpython2.7.a", "libpython2.7.so")

	got, err := Resolve(Spec{
		Pattern:  "python2.7",
		Paths:    []string{dir},
		Platform: Posix,
		Kind:     Static,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "libpython2.7.a"); got.Path != want {
		t.Errorf("Path = %q, want %q", got.Path, want)
	}
	if got.LinkName != "python2.7" {
		t.Errorf("LinkName = %q, want %q", got.LinkName, "python2.7")
	}
}

func TestResolveSearchOrder(t *testing.T) {
	// The first directory with any match wins, even when a later
	// directory holds a newer version.
	first := t.TempDir()
	second := t.TempDir()
	touch(t, first, "libfoo.so.1.0.0")
	touch(t, second, "libfoo.so.2.0.0")

	got, err := Resolve(Spec{
		Pattern:  "foo",
		Paths:    []string{first, second},
		Platform: Posix,
		Kind:     Shared,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(first, "libfoo.so.1.0.0"); got.Path != want {
		t.Errorf("Path = %q, want %q", got.Path, want)
	}
}

func TestResolveSkipsMissingDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libfoo.so")

	got, err := Resolve(Spec{
		Pattern:  "foo",
		Paths:    []string{filepath.Join(dir, "no-such-dir"), dir},
		Platform: Posix,
		Kind:     Shared,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.LinkName != "foo" {
		t.Errorf("LinkName = %q, want %q", got.LinkName, "foo")
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libbar.so")

	_, err := Resolve(Spec{
		Pattern:  "foo",
		Paths:    []string{dir},
		Platform: Posix,
		Kind:     Shared,
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nf.Pattern != "foo" {
		t.Errorf("Pattern = %q, want %q", nf.Pattern, "foo")
	}
}

func TestResolveDeterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libfoo.so.1.2", "libfoo.so.1.2.0", "libfoo.so.1.10")

	spec := Spec{Pattern: "foo", Paths: []string{dir}, Platform: Posix, Kind: Shared}
	first, err := Resolve(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Resolve(spec)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Resolve not deterministic: %v vs %v", again, first)
		}
	}
	if want := filepath.Join(dir, "libfoo.so.1.10"); first.Path != want {
		t.Errorf("Path = %q, want %q", first.Path, want)
	}
}

func TestPickPrefersShortestOnTie(t *testing.T) {
	// verCompare treats 1.2 and 1.02 as equal; the shorter name wins.
	if got := pick([]string{"libfoo.so.1.02", "libfoo.so.1.2"}); got != "libfoo.so.1.2" {
		t.Errorf("pick = %q, want %q", got, "libfoo.so.1.2")
	}
}
