// Package buildinfo carries build-time information injected via ldflags:
//
//	go build -ldflags "-X github.com/sci-bots/dmfbuild/internal/buildinfo.Version=..."
package buildinfo

var (
	// Version is the dmfbuild release, set from the git tag at build time.
	Version = "dev"

	// GitCommit is the abbreviated commit hash dmfbuild was built from.
	GitCommit = ""

	// BuildTime is the RFC3339 build timestamp.
	BuildTime = ""
)

// String renders the info in the "version (commit, time)" form the version
// command prints.
func String() string {
	s := Version
	if GitCommit != "" {
		s += " (" + GitCommit
		if BuildTime != "" {
			s += ", " + BuildTime
		}
		s += ")"
	}
	return s
}
