package buildsys

// BuildSystem captures shared capabilities of sub-build drivers (SCons,
// Sphinx, etc). It keeps the common lifecycle and variable/env setup;
// implementations add their own extras.
type BuildSystem interface {
	// Use injects an installed dependency prefix into the environment.
	Use(root string)

	// Define exports a build variable to the sub-build.
	Define(key, val string)

	// Env sets key=value for every command spawned later.
	Env(key, val string)

	// Build runs the sub-build, optionally limited to named targets.
	Build(targets ...string) error

	// OutputDir is where artifacts land.
	OutputDir() string
}
