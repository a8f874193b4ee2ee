// Package version derives the software version stamped on build artifacts
// from version-control metadata.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// Tag is a parsed release tag. Major and Minor always come from the tag;
// Micro defaults to 0 when the tag omits it. Branch is empty exactly when
// the build is on the primary branch.
type Tag struct {
	Major  int
	Minor  int
	Micro  int
	Branch string
}

// String renders the normalized version: "major.minor.micro", with a
// "-branch" qualifier off the primary branch.
func (t Tag) String() string {
	s := fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Micro)
	if t.Branch != "" {
		s += "-" + t.Branch
	}
	return s
}

// ParseError reports a describe string the version cannot be derived from.
// Downstream artifact naming depends on the version, so callers abort.
type ParseError struct {
	Describe string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot derive version from %q: want v<major>.<minor>[-<micro>]", e.Describe)
}

// describeRe accepts "v<major>.<minor>", an optional numeric micro segment
// after '-' or '.', and arbitrary trailing describe output (commit distance,
// abbreviated hash) which the version ignores.
var describeRe = regexp.MustCompile(`^v(\d+)\.(\d+)(?:[.-](\d+))?(?:-.*)?$`)

// Parse extracts the version components from raw "describe" output.
func Parse(describe string) (Tag, error) {
	m := describeRe.FindStringSubmatch(describe)
	if m == nil {
		return Tag{}, &ParseError{Describe: describe}
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Tag{}, &ParseError{Describe: describe}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Tag{}, &ParseError{Describe: describe}
	}
	micro := 0
	if m[3] != "" {
		if micro, err = strconv.Atoi(m[3]); err != nil {
			return Tag{}, &ParseError{Describe: describe}
		}
	}
	return Tag{Major: major, Minor: minor, Micro: micro}, nil
}

// Derive computes the software version for a build: the tag's normalized
// three-component version, suffixed with the branch name when the build is
// not on the primary branch. Computed once per invocation; callers carry
// the result read-only in the build configuration.
func Derive(describe, branch, primary string) (string, error) {
	tag, err := Parse(describe)
	if err != nil {
		return "", err
	}
	if branch != primary {
		tag.Branch = branch
	}
	return tag.String(), nil
}

// Latest returns the newest release tag in semver order, normalized to
// canonical "v<major>.<minor>.<micro>" form. Entries that do not parse as
// release tags are ignored. Returns "" when nothing qualifies.
func Latest(tags []string) string {
	latest := ""
	for _, tag := range tags {
		parsed, err := Parse(tag)
		if err != nil {
			continue
		}
		v := semver.Canonical("v" + parsed.String())
		if latest == "" || semver.Compare(v, latest) > 0 {
			latest = v
		}
	}
	return latest
}
